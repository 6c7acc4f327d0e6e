package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/report"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
)

// ListReportsQuery narrows the listing. CategorySlug takes effect only when
// CategoryID is zero.
type ListReportsQuery struct {
	Query        string
	CategoryID   uint
	CategorySlug string
}

type ListReportsUseCase struct {
	reportRepo   report.Repository
	categoryRepo report.CategoryRepository
}

func NewListReportsUseCase(reportRepo report.Repository, categoryRepo report.CategoryRepository) *ListReportsUseCase {
	return &ListReportsUseCase{
		reportRepo:   reportRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute returns summaries newest-first. The filters are pushed down to
// the store; an empty query and zero category mean the full listing. An
// unknown category slug matches nothing rather than erroring, same as
// filtering by a category that has no reports.
func (uc *ListReportsUseCase) Execute(ctx context.Context, q ListReportsQuery) ([]report.Summary, error) {
	categoryID := q.CategoryID
	if categoryID == 0 && q.CategorySlug != "" {
		category, err := uc.categoryRepo.GetBySlug(ctx, q.CategorySlug)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return []report.Summary{}, nil
			}
			return nil, err
		}
		categoryID = category.ID
	}

	return uc.reportRepo.List(ctx, report.ListFilter{
		Query:      q.Query,
		CategoryID: categoryID,
	})
}
