package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	"github.com/nippo-inc/nippo/internal/shared/db"
)

// CommentRepository implements report.CommentRepository on GORM.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(gormDB *gorm.DB) report.CommentRepository {
	return &CommentRepository{db: gormDB}
}

func (r *CommentRepository) Create(ctx context.Context, entity *report.Comment) error {
	model := models.CommentModel{
		ReportID:  entity.ReportID(),
		AuthorID:  entity.AuthorID(),
		Text:      entity.Text(),
		CreatedAt: entity.CreatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Omit("Author", "Report").Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set comment ID: %w", err)
	}

	return nil
}

func (r *CommentRepository) ListByReport(ctx context.Context, reportID uint) ([]report.CommentView, error) {
	var rows []models.CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	views := make([]report.CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, report.CommentView{
			ID:        row.ID,
			Author:    authorInfoFromModel(&row.Author),
			Text:      row.Text,
			CreatedAt: row.CreatedAt,
		})
	}
	return views, nil
}

func (r *CommentRepository) CountByReport(ctx context.Context, reportID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CommentModel{}).
		Where("report_id = ?", reportID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
