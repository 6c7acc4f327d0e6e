package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/shared/db"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

type UpdateReportCommand struct {
	ReportID   uint
	ActorID    uint
	CategoryID uint
	TagIDs     []uint
	Title      string
	Body       string
	Image      *string
	Condition  string
}

type UpdateReportUseCase struct {
	reportRepo   report.Repository
	categoryRepo report.CategoryRepository
	tagRepo      report.TagRepository
	txManager    *db.TransactionManager
	logger       logger.Interface
}

func NewUpdateReportUseCase(
	reportRepo report.Repository,
	categoryRepo report.CategoryRepository,
	tagRepo report.TagRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *UpdateReportUseCase {
	return &UpdateReportUseCase{
		reportRepo:   reportRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute rewrites the report and replaces its tag set in one transaction.
// Only the author may edit; existence is checked before authorship so a
// missing report reads as not found, not forbidden.
func (uc *UpdateReportUseCase) Execute(ctx context.Context, cmd UpdateReportCommand) (*report.Report, error) {
	existing, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		return nil, err
	}

	if !existing.IsAuthoredBy(cmd.ActorID) {
		return nil, apperrors.NewForbiddenError("only the author can edit this report")
	}

	if _, err := uc.categoryRepo.GetByID(ctx, cmd.CategoryID); err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewFieldValidationError("invalid report fields", map[string]string{
				"category_id": "category does not exist",
			})
		}
		return nil, err
	}

	if err := uc.validateTags(ctx, cmd.TagIDs); err != nil {
		return nil, err
	}

	if err := existing.Update(
		cmd.CategoryID,
		cmd.TagIDs,
		cmd.Title,
		cmd.Body,
		cmd.Image,
		report.Condition(cmd.Condition),
	); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Update(txCtx, existing); err != nil {
			return err
		}
		return uc.reportRepo.ReplaceTags(txCtx, existing.ID(), existing.TagIDs())
	})
	if err != nil {
		uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
		return nil, apperrors.NewInternalError("failed to save report, please try again", err.Error())
	}

	uc.logger.Infow("report updated", "report_id", existing.ID(), "actor_id", cmd.ActorID)

	return existing, nil
}

func (uc *UpdateReportUseCase) validateTags(ctx context.Context, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	tags, err := uc.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}

	known := make(map[uint]struct{}, len(tags))
	for _, t := range tags {
		known[t.ID] = struct{}{}
	}
	for _, id := range tagIDs {
		if _, ok := known[id]; !ok {
			return apperrors.NewFieldValidationError("invalid report fields", map[string]string{
				"tag_ids": "one or more tags do not exist",
			})
		}
	}
	return nil
}
