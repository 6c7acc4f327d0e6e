package usecases

import (
	"context"
	"fmt"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/domain/user"
	"github.com/nippo-inc/nippo/internal/infrastructure/email"
	"github.com/nippo-inc/nippo/internal/shared/db"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/goroutine"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

type CreateReportCommand struct {
	AuthorID   uint
	CategoryID uint
	TagIDs     []uint
	Title      string
	Body       string
	Image      *string
	Condition  string
}

type CreateReportUseCase struct {
	reportRepo     report.Repository
	categoryRepo   report.CategoryRepository
	tagRepo        report.TagRepository
	userRepo       user.Repository
	txManager      *db.TransactionManager
	notifier       email.NotificationService
	managerAddress string
	logger         logger.Interface
}

func NewCreateReportUseCase(
	reportRepo report.Repository,
	categoryRepo report.CategoryRepository,
	tagRepo report.TagRepository,
	userRepo user.Repository,
	txManager *db.TransactionManager,
	notifier email.NotificationService,
	managerAddress string,
	logger logger.Interface,
) *CreateReportUseCase {
	return &CreateReportUseCase{
		reportRepo:     reportRepo,
		categoryRepo:   categoryRepo,
		tagRepo:        tagRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		notifier:       notifier,
		managerAddress: managerAddress,
		logger:         logger,
	}
}

// Execute creates the report row and its tag associations atomically. A
// failure on either side rolls the whole write back, so a report is never
// persisted with half its tags.
func (uc *CreateReportUseCase) Execute(ctx context.Context, cmd CreateReportCommand) (*report.Report, error) {
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

	newReport, err := report.NewReport(
		cmd.AuthorID,
		cmd.CategoryID,
		cmd.TagIDs,
		cmd.Title,
		cmd.Body,
		cmd.Image,
		report.Condition(cmd.Condition),
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Create(txCtx, newReport); err != nil {
			return err
		}
		return uc.reportRepo.ReplaceTags(txCtx, newReport.ID(), newReport.TagIDs())
	})
	if err != nil {
		uc.logger.Errorw("failed to create report", "author_id", cmd.AuthorID, "error", err)
		return nil, apperrors.NewInternalError("failed to save report, please try again", err.Error())
	}

	uc.logger.Infow("report created",
		"report_id", newReport.ID(),
		"author_id", newReport.AuthorID(),
		"condition", newReport.Condition().String(),
	)

	if newReport.IsDistress() {
		uc.notifyDistress(ctx, newReport)
	}

	return newReport, nil
}

func (uc *CreateReportUseCase) validateTags(ctx context.Context, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	tags, err := uc.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to validate tags: %w", err)
	}

	known := make(map[uint]struct{}, len(tags))
	for _, t := range tags {
		known[t.ID] = struct{}{}
	}
	for _, id := range tagIDs {
		if _, ok := known[id]; !ok {
			return apperrors.NewFieldValidationError("invalid report fields", map[string]string{
				"tag_ids": fmt.Sprintf("tag %d does not exist", id),
			})
		}
	}
	return nil
}

// notifyDistress emails the manager off the request path. Delivery failure
// is logged, never surfaced to the author.
func (uc *CreateReportUseCase) notifyDistress(ctx context.Context, r *report.Report) {
	if uc.managerAddress == "" {
		return
	}

	author, err := uc.userRepo.GetByID(ctx, r.AuthorID())
	if err != nil {
		uc.logger.Warnw("failed to load author for distress notification", "report_id", r.ID(), "error", err)
		return
	}

	reportID := r.ID()
	title := r.Title()
	authorName := author.Username()

	goroutine.SafeGo(uc.logger, "distress-notification", func() {
		if err := uc.notifier.SendDistressNotification(uc.managerAddress, authorName, title, reportID); err != nil {
			uc.logger.Warnw("failed to send distress notification", "report_id", reportID, "error", err)
		}
	})
}
