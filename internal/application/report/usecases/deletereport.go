package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/report"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// ImageRemover deletes a stored report image by its reference.
type ImageRemover interface {
	Remove(reference string) error
}

type DeleteReportCommand struct {
	ReportID uint
	ActorID  uint
}

type DeleteReportUseCase struct {
	reportRepo report.Repository
	imageStore ImageRemover
	logger     logger.Interface
}

func NewDeleteReportUseCase(
	reportRepo report.Repository,
	imageStore ImageRemover,
	logger logger.Interface,
) *DeleteReportUseCase {
	return &DeleteReportUseCase{
		reportRepo: reportRepo,
		imageStore: imageStore,
		logger:     logger,
	}
}

// Execute removes the report. Comments and tag associations go with it via
// the store's cascading foreign keys; only the author may delete. The
// attached image file is cleaned up after the row is gone, and a failure
// there never fails the request.
func (uc *DeleteReportUseCase) Execute(ctx context.Context, cmd DeleteReportCommand) error {
	existing, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		return err
	}

	if !existing.IsAuthoredBy(cmd.ActorID) {
		return apperrors.NewForbiddenError("only the author can delete this report")
	}

	if err := uc.reportRepo.Delete(ctx, cmd.ReportID); err != nil {
		uc.logger.Errorw("failed to delete report", "report_id", cmd.ReportID, "error", err)
		return err
	}

	if image := existing.Image(); image != nil && *image != "" {
		if err := uc.imageStore.Remove(*image); err != nil {
			uc.logger.Warnw("failed to remove report image", "report_id", cmd.ReportID, "image", *image, "error", err)
		}
	}

	uc.logger.Infow("report deleted", "report_id", cmd.ReportID, "actor_id", cmd.ActorID)
	return nil
}
