package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/services/markdown"
)

// DetailResult is the detail read model with the body rendered to
// sanitized HTML and the view counter already refreshed.
type DetailResult struct {
	Detail   *report.Detail
	BodyHTML string
}

type GetReportUseCase struct {
	reportRepo report.Repository
	markdown   markdown.Service
	logger     logger.Interface
}

func NewGetReportUseCase(
	reportRepo report.Repository,
	markdownService markdown.Service,
	logger logger.Interface,
) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo: reportRepo,
		markdown:   markdownService,
		logger:     logger,
	}
}

// Execute loads the detail, then counts the view. The increment happens
// store-side so concurrent viewers cannot lose updates, and the counter is
// re-read afterwards so the response reflects this view. A missing report
// is reported before any counter is touched.
func (uc *GetReportUseCase) Execute(ctx context.Context, id uint) (*DetailResult, error) {
	detail, err := uc.reportRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.reportRepo.IncrementViewCount(ctx, id); err != nil {
		// The page still renders; only the counter is stale.
		uc.logger.Warnw("failed to increment view count", "report_id", id, "error", err)
	} else if count, err := uc.reportRepo.GetViewCount(ctx, id); err == nil {
		detail.ViewCount = count
	}

	bodyHTML, err := uc.markdown.ToHTMLSanitized(detail.Report.Body())
	if err != nil {
		uc.logger.Warnw("failed to render report body", "report_id", id, "error", err)
		bodyHTML = ""
	}

	return &DetailResult{
		Detail:   detail,
		BodyHTML: bodyHTML,
	}, nil
}
