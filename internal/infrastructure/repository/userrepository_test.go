package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/domain/user"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

func TestUserRepository_Create(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewUserRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	t.Run("create user successfully", func(t *testing.T) {
		u, err := user.NewUser("yamada", "hash", "EMP001", "", "", "")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, u))
		assert.NotZero(t, u.ID())
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		u, err := user.NewUser("yamada", "hash", "EMP002", "", "", "")
		require.NoError(t, err)

		err = repo.Create(ctx, u)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("duplicate employee ID maps to conflict", func(t *testing.T) {
		u, err := user.NewUser("suzuki", "hash", "EMP001", "", "", "")
		require.NoError(t, err)

		err = repo.Create(ctx, u)
		assert.True(t, apperrors.IsConflictError(err))
	})
}

func TestUserRepository_Get(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewUserRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	created := seedUser(t, gormDB, "yamada", "EMP001")

	t.Run("get by ID", func(t *testing.T) {
		found, err := repo.GetByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, "yamada", found.Username())
		assert.Equal(t, user.DefaultDepartment, found.Department())
	})

	t.Run("get by username", func(t *testing.T) {
		found, err := repo.GetByUsername(ctx, "yamada")
		require.NoError(t, err)
		assert.Equal(t, created.ID(), found.ID())
	})

	t.Run("get by employee ID", func(t *testing.T) {
		found, err := repo.GetByEmployeeID(ctx, "EMP001")
		require.NoError(t, err)
		assert.Equal(t, created.ID(), found.ID())
	})

	t.Run("unknown username returns not found", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestUserRepository_Update(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewUserRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	created := seedUser(t, gormDB, "yamada", "EMP001")
	require.NoError(t, created.UpdateProfile("Design", "Manager", "new bio"))

	require.NoError(t, repo.Update(ctx, created))

	found, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "Design", found.Department())
	assert.Equal(t, "Manager", found.Position())
	assert.Equal(t, "new bio", found.Bio())
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewUserRepository(gormDB, logger.NewLogger())
	commentRepo := NewCommentRepository(gormDB)
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	commenter := seedUser(t, gormDB, "suzuki", "EMP002")
	category := seedCategory(t, gormDB, "Status Report", "status-report")
	tag := seedTag(t, gormDB, "golang")

	created := seedReport(t, gormDB, author.ID(), category.ID, []uint{tag.ID}, "Post", "Body", report.ConditionNormal)
	comment, err := report.NewComment(created.ID(), commenter.ID(), "Nice!")
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(ctx, comment))

	require.NoError(t, repo.Delete(ctx, author.ID()))

	var reportCount, commentCount, assocCount int64
	require.NoError(t, gormDB.Model(&models.ReportModel{}).Count(&reportCount).Error)
	require.NoError(t, gormDB.Model(&models.CommentModel{}).Count(&commentCount).Error)
	require.NoError(t, gormDB.Model(&models.ReportTagModel{}).Count(&assocCount).Error)
	assert.Zero(t, reportCount, "reports go with their author")
	assert.Zero(t, commentCount, "comments go with the report")
	assert.Zero(t, assocCount, "tag associations go with the report")

	// The commenter and the reference data survive.
	_, err = repo.GetByID(ctx, commenter.ID())
	assert.NoError(t, err)

	t.Run("deleting again is not found", func(t *testing.T) {
		err := repo.Delete(ctx, author.ID())
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestUserRepository_Exists(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewUserRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	seedUser(t, gormDB, "yamada", "EMP001")

	exists, err := repo.ExistsByUsername(ctx, "yamada")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "suzuki")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmployeeID(ctx, "EMP001")
	require.NoError(t, err)
	assert.True(t, exists)
}
