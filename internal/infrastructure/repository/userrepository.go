package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/domain/user"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// UserRepository implements the user repository interface on GORM.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, log logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		logger: log,
	}
}

func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := userToModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("username or employee ID already taken")
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "employee_id", model.EmployeeID)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userToEntity(&model)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userToEntity(&model)
}

func (r *UserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user by employee ID", "employee_id", employeeID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userToEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]interface{}{
			"department": entity.Department(),
			"position":   entity.Position(),
			"bio":        entity.Bio(),
			"updated_at": entity.UpdatedAt(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to
	// existing values. That is not a "user not found" condition.

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}

	r.logger.Infow("user deleted", "id", id)
	return nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return count > 0, nil
}

func userToModel(entity *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		PasswordHash: entity.PasswordHash(),
		EmployeeID:   entity.EmployeeID(),
		Department:   entity.Department(),
		Position:     entity.Position(),
		Bio:          entity.Bio(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func userToEntity(model *models.UserModel) (*user.User, error) {
	entity, err := user.ReconstructUser(
		model.ID,
		model.Username,
		model.PasswordHash,
		model.EmployeeID,
		model.Department,
		model.Position,
		model.Bio,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return entity, nil
}
