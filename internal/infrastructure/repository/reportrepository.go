package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	"github.com/nippo-inc/nippo/internal/shared/db"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// ReportRepository implements the report repository interface on GORM.
// Mutations resolve the transaction from the context so multi-entity writes
// (report + tag associations) commit or roll back together.
type ReportRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewReportRepository(gormDB *gorm.DB, log logger.Interface) report.Repository {
	return &ReportRepository{
		db:     gormDB,
		logger: log,
	}
}

func (r *ReportRepository) Create(ctx context.Context, entity *report.Report) error {
	model := reportToModel(entity)
	tx := db.GetTxFromContext(ctx, r.db)

	// Associations are written explicitly (ReplaceTags); never let GORM
	// autosave them from the model.
	if err := tx.Omit("Author", "Category", "Tags").Create(model).Error; err != nil {
		r.logger.Errorw("failed to create report", "error", err)
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set report ID: %w", err)
	}

	return nil
}

func (r *ReportRepository) Update(ctx context.Context, entity *report.Report) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ReportModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"category_id": entity.CategoryID(),
			"title":       entity.Title(),
			"body":        entity.Body(),
			"image":       entity.Image(),
			"condition":   entity.Condition().String(),
			"updated_at":  entity.UpdatedAt(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update report", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update report: %w", result.Error)
	}

	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.ReportModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete report", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("report not found")
	}

	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uint) (*report.Report, error) {
	var model models.ReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Preload("Tags").First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("report not found")
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return reportToEntity(&model)
}

// GetDetail loads the report with its to-one relations joined and its
// to-many relations batched: one query for the report row (author and
// category joined), one for tags, one for comments with their authors.
func (r *ReportRepository) GetDetail(ctx context.Context, id uint) (*report.Detail, error) {
	var model models.ReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Joins("Author").
		Joins("Category").
		Preload("Tags").
		First(&model, "reports.id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("report not found")
		}
		return nil, fmt.Errorf("failed to get report detail: %w", err)
	}

	entity, err := reportToEntity(&model)
	if err != nil {
		return nil, err
	}

	comments, err := r.loadComments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &report.Detail{
		Report:    entity,
		Author:    authorInfoFromModel(&model.Author),
		Category:  report.Category{ID: model.Category.ID, Name: model.Category.Name, Slug: model.Category.Slug},
		Tags:      tagsFromModels(model.Tags),
		Comments:  comments,
		ViewCount: model.ViewCount,
	}, nil
}

func (r *ReportRepository) loadComments(ctx context.Context, reportID uint) ([]report.CommentView, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.CommentModel
	if err := tx.
		Preload("Author").
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
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

// List composes the optional free-text and category filters into a single
// relational query: base rows with author and category joined, plus one
// batched query for tags. Nothing is filtered in application memory.
func (r *ReportRepository) List(ctx context.Context, filter report.ListFilter) ([]report.Summary, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ReportModel{}).
		Joins("Author").
		Joins("Category").
		Preload("Tags")

	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(reports.title) LIKE ? OR LOWER(reports.body) LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != 0 {
		query = query.Where("reports.category_id = ?", filter.CategoryID)
	}

	var rows []models.ReportModel
	if err := query.Order("reports.created_at DESC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list reports", "error", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	summaries := make([]report.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, report.Summary{
			ID:        row.ID,
			Title:     row.Title,
			Condition: report.Condition(row.Condition),
			ViewCount: row.ViewCount,
			Author:    authorInfoFromModel(&row.Author),
			Category:  report.Category{ID: row.Category.ID, Name: row.Category.Name, Slug: row.Category.Slug},
			Tags:      tagsFromModels(row.Tags),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return summaries, nil
}

// IncrementViewCount bumps the counter with a store-side arithmetic update
// so concurrent detail views never lose an increment. UpdateColumn leaves
// updated_at untouched; a view is not an edit. Zero matched rows is a no-op.
func (r *ReportRepository) IncrementViewCount(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.ReportModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		r.logger.Errorw("failed to increment view count", "id", id, "error", err)
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func (r *ReportRepository) GetViewCount(ctx context.Context, id uint) (uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count uint
	if err := tx.Model(&models.ReportModel{}).
		Where("id = ?", id).
		Pluck("view_count", &count).Error; err != nil {
		return 0, fmt.Errorf("failed to read view count: %w", err)
	}
	return count, nil
}

// ReplaceTags swaps the association set in full: delete rows no longer
// wanted, insert the new set. Runs inside the caller's transaction when one
// is present in the context.
func (r *ReportRepository) ReplaceTags(ctx context.Context, reportID uint, tagIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("report_id = ?", reportID).Delete(&models.ReportTagModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear report tags: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]models.ReportTagModel, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.ReportTagModel{ReportID: reportID, TagID: tagID})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save report tags: %w", err)
	}

	return nil
}

func reportToModel(entity *report.Report) *models.ReportModel {
	return &models.ReportModel{
		ID:         entity.ID(),
		AuthorID:   entity.AuthorID(),
		CategoryID: entity.CategoryID(),
		Title:      entity.Title(),
		Body:       entity.Body(),
		Image:      entity.Image(),
		Condition:  entity.Condition().String(),
		ViewCount:  entity.ViewCount(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}

func reportToEntity(model *models.ReportModel) (*report.Report, error) {
	tagIDs := make([]uint, 0, len(model.Tags))
	for _, tag := range model.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	entity, err := report.ReconstructReport(
		model.ID,
		model.AuthorID,
		model.CategoryID,
		tagIDs,
		model.Title,
		model.Body,
		model.Image,
		report.Condition(model.Condition),
		model.ViewCount,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to map report: %w", err)
	}
	return entity, nil
}

func authorInfoFromModel(model *models.UserModel) report.AuthorInfo {
	return report.AuthorInfo{
		ID:         model.ID,
		Username:   model.Username,
		Department: model.Department,
		Position:   model.Position,
	}
}

func tagsFromModels(rows []models.TagModel) []report.Tag {
	tags := make([]report.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, report.Tag{ID: row.ID, Name: row.Name})
	}
	return tags
}
