package usecases

import (
	"context"

	"github.com/nippo-inc/nippo/internal/domain/user"
)

type GetProfileUseCase struct {
	userRepo user.Repository
}

func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*user.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
