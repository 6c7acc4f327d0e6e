package usecases

import (
	"context"
	"fmt"

	"github.com/nippo-inc/nippo/internal/domain/user"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type RegisterCommand struct {
	Username   string
	Password   string
	EmployeeID string
	Department string
	Position   string
	Bio        string
}

type RegisterUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	logger         logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		logger:         logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*user.User, error) {
	exists, err := uc.userRepo.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		uc.logger.Errorw("failed to check username existence", "error", err)
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("username already taken", cmd.Username)
	}

	exists, err = uc.userRepo.ExistsByEmployeeID(ctx, cmd.EmployeeID)
	if err != nil {
		uc.logger.Errorw("failed to check employee ID existence", "error", err)
		return nil, fmt.Errorf("failed to check employee ID existence: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("employee ID already registered", cmd.EmployeeID)
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(cmd.Username, hash, cmd.EmployeeID, cmd.Department, cmd.Position, cmd.Bio)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "username", newUser.Username())

	return newUser, nil
}
