package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/user"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// UpdateProfileCommand carries the editable profile fields. Nil pointers
// keep the current value.
type UpdateProfileCommand struct {
	UserID     uint
	Department *string
	Position   *string
	Bio        *string
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
	existingUser, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	department := existingUser.Department()
	if cmd.Department != nil {
		department = *cmd.Department
	}
	position := existingUser.Position()
	if cmd.Position != nil {
		position = *cmd.Position
	}
	bio := existingUser.Bio()
	if cmd.Bio != nil {
		bio = *cmd.Bio
	}

	if err := existingUser.UpdateProfile(department, position, bio); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("profile updated", "user_id", cmd.UserID)

	return existingUser, nil
}
