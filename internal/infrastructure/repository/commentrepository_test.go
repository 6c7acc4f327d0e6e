package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nippo-inc/nippo/internal/domain/report"
)

func TestCommentRepository(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewCommentRepository(gormDB)
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	commenter := seedUser(t, gormDB, "suzuki", "EMP002")
	category := seedCategory(t, gormDB, "Casual", "casual")
	created := seedReport(t, gormDB, author.ID(), category.ID, nil, "Post", "Body", report.ConditionNormal)

	t.Run("create and list in chronological order", func(t *testing.T) {
		first, err := report.NewComment(created.ID(), commenter.ID(), "First!")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, first))
		assert.NotZero(t, first.ID())

		second, err := report.NewComment(created.ID(), author.ID(), "Thanks")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, second))

		views, err := repo.ListByReport(ctx, created.ID())
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "First!", views[0].Text)
		assert.Equal(t, "suzuki", views[0].Author.Username)
		assert.Equal(t, "Thanks", views[1].Text)
	})

	t.Run("count by report", func(t *testing.T) {
		count, err := repo.CountByReport(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("comment on missing report violates the foreign key", func(t *testing.T) {
		orphan, err := report.NewComment(9999, commenter.ID(), "Hello?")
		require.NoError(t, err)
		assert.Error(t, repo.Create(ctx, orphan))
	})
}
