package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
)

// CategoryRepository implements report.CategoryRepository on GORM.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) report.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *report.Category) error {
	model := models.CategoryModel{
		Name: c.Name,
		Slug: c.Slug,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("category slug already exists", c.Slug)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	c.ID = model.ID
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]report.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]report.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, report.Category{ID: row.ID, Name: row.Name, Slug: row.Slug})
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*report.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &report.Category{ID: model.ID, Name: model.Name, Slug: model.Slug}, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*report.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &report.Category{ID: model.ID, Name: model.Name, Slug: model.Slug}, nil
}

// TagRepository implements report.TagRepository on GORM.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) report.TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, t *report.Tag) error {
	model := models.TagModel{Name: t.Name}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	t.ID = model.ID
	return nil
}

func (r *TagRepository) List(ctx context.Context) ([]report.Tag, error) {
	var rows []models.TagModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]report.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, report.Tag{ID: row.ID, Name: row.Name})
	}
	return tags, nil
}

func (r *TagRepository) GetByIDs(ctx context.Context, ids []uint) ([]report.Tag, error) {
	if len(ids) == 0 {
		return []report.Tag{}, nil
	}

	var rows []models.TagModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags by IDs: %w", err)
	}

	tags := make([]report.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, report.Tag{ID: row.ID, Name: row.Name})
	}
	return tags, nil
}
