package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/domain/report"
)

// RankingRepository implements the manager dashboard aggregates. Each
// ranking is one group-by query joined against users; no per-author
// follow-up queries.
type RankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(gormDB *gorm.DB) report.RankingRepository {
	return &RankingRepository{db: gormDB}
}

func (r *RankingRepository) TopAuthors(ctx context.Context, limit int) ([]report.AuthorCount, error) {
	var rows []report.AuthorCount
	if err := r.db.WithContext(ctx).
		Table("reports").
		Select("users.id AS user_id, users.username, users.department, COUNT(reports.id) AS count").
		Joins("JOIN users ON users.id = reports.author_id").
		Group("users.id, users.username, users.department").
		Order("count DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank authors: %w", err)
	}
	return rows, nil
}

// TopDistress counts only reports whose condition signals distress. The
// column name is a reserved word in MySQL, hence the backticks; SQLite
// accepts them too.
func (r *RankingRepository) TopDistress(ctx context.Context, limit int) ([]report.AuthorCount, error) {
	var rows []report.AuthorCount
	if err := r.db.WithContext(ctx).
		Table("reports").
		Select("users.id AS user_id, users.username, users.department, COUNT(reports.id) AS count").
		Joins("JOIN users ON users.id = reports.author_id").
		Where("reports.`condition` = ?", report.ConditionBad.String()).
		Group("users.id, users.username, users.department").
		Order("count DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank distress reports: %w", err)
	}
	return rows, nil
}
