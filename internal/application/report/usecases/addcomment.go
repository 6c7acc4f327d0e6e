package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/report"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// AddCommentCommand attaches a comment to a report. AuthorID comes from the
// authenticated session, never from the request body.
type AddCommentCommand struct {
	ReportID uint
	AuthorID uint
	Text     string
}

type AddCommentUseCase struct {
	reportRepo  report.Repository
	commentRepo report.CommentRepository
	logger      logger.Interface
}

func NewAddCommentUseCase(
	reportRepo report.Repository,
	commentRepo report.CommentRepository,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		reportRepo:  reportRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*report.Comment, error) {
	// Commenting on a missing report is a not-found, not a FK error.
	if _, err := uc.reportRepo.GetByID(ctx, cmd.ReportID); err != nil {
		return nil, err
	}

	comment, err := report.NewComment(cmd.ReportID, cmd.AuthorID, cmd.Text)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Errorw("failed to add comment", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	uc.logger.Infow("comment added", "comment_id", comment.ID(), "report_id", cmd.ReportID)

	return comment, nil
}
