package usecases

import (
	"context"
	"fmt"

	"github.com/nippo-inc/nippo/internal/domain/user"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(userID uint, username string) (string, error)
	AccessExpMinutes() int
}

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	User        *user.User
	AccessToken string
	ExpiresIn   int64
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	tokenService   TokenService
	logger         logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokenService TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokenService:   tokenService,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	existingUser, err := uc.userRepo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		// Same error for unknown username and wrong password.
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid username or password")
		}
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := uc.passwordHasher.Verify(cmd.Password, existingUser.PasswordHash()); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	token, err := uc.tokenService.Generate(existingUser.ID(), existingUser.Username())
	if err != nil {
		uc.logger.Errorw("failed to generate token", "error", err, "user_id", existingUser.ID())
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", existingUser.ID(), "username", existingUser.Username())

	return &LoginResult{
		User:        existingUser,
		AccessToken: token,
		ExpiresIn:   int64(uc.tokenService.AccessExpMinutes()) * 60,
	}, nil
}
