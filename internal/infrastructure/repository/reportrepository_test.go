package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/domain/user"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/migrations"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	"github.com/nippo-inc/nippo/internal/shared/db"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
)

// setupTestDB opens an in-memory store limited to a single connection so
// the foreign key pragma and concurrent access share the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, migrations.AutoMigrate(gormDB))

	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, username, employeeID string) *user.User {
	t.Helper()

	repo := NewUserRepository(gormDB, logger.NewLogger())
	u, err := user.NewUser(username, "hash", employeeID, "", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedCategory(t *testing.T, gormDB *gorm.DB, name, slug string) *report.Category {
	t.Helper()

	repo := NewCategoryRepository(gormDB)
	c := &report.Category{Name: name, Slug: slug}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func seedTag(t *testing.T, gormDB *gorm.DB, name string) *report.Tag {
	t.Helper()

	repo := NewTagRepository(gormDB)
	tag := &report.Tag{Name: name}
	require.NoError(t, repo.Create(context.Background(), tag))
	return tag
}

func seedReport(t *testing.T, gormDB *gorm.DB, authorID, categoryID uint, tagIDs []uint, title, body string, condition report.Condition) *report.Report {
	t.Helper()

	repo := NewReportRepository(gormDB, logger.NewLogger())
	txManager := db.NewTransactionManager(gormDB)

	r, err := report.NewReport(authorID, categoryID, tagIDs, title, body, nil, condition)
	require.NoError(t, err)

	err = txManager.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, r); err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, r.ID(), r.TagIDs())
	})
	require.NoError(t, err)

	return r
}

func TestReportRepository_CreateAndGet(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	category := seedCategory(t, gormDB, "Status Report", "status-report")
	tag1 := seedTag(t, gormDB, "golang")
	tag2 := seedTag(t, gormDB, "infra")

	t.Run("round trip with tags", func(t *testing.T) {
		created := seedReport(t, gormDB, author.ID(), category.ID, []uint{tag1.ID, tag2.ID}, "Monday", "Worked on the API.", report.ConditionGood)

		found, err := repo.GetByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, "Monday", found.Title())
		assert.Equal(t, report.ConditionGood, found.Condition())
		assert.ElementsMatch(t, []uint{tag1.ID, tag2.ID}, found.TagIDs())
	})

	t.Run("missing report returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestReportRepository_GetDetail(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	commentRepo := NewCommentRepository(gormDB)
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	commenter := seedUser(t, gormDB, "suzuki", "EMP002")
	category := seedCategory(t, gormDB, "Tech Share", "tech-share")
	tag := seedTag(t, gormDB, "golang")

	created := seedReport(t, gormDB, author.ID(), category.ID, []uint{tag.ID}, "TIL", "Learned about contexts.", report.ConditionNormal)

	first, err := report.NewComment(created.ID(), commenter.ID(), "Great write-up")
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(ctx, first))

	second, err := report.NewComment(created.ID(), author.ID(), "Thanks!")
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(ctx, second))

	t.Run("detail carries all relations", func(t *testing.T) {
		detail, err := repo.GetDetail(ctx, created.ID())
		require.NoError(t, err)

		assert.Equal(t, "yamada", detail.Author.Username)
		assert.Equal(t, "tech-share", detail.Category.Slug)
		require.Len(t, detail.Tags, 1)
		assert.Equal(t, "golang", detail.Tags[0].Name)
		require.Len(t, detail.Comments, 2)
		assert.Equal(t, "Great write-up", detail.Comments[0].Text)
		assert.Equal(t, "suzuki", detail.Comments[0].Author.Username)
	})

	t.Run("missing report returns not found", func(t *testing.T) {
		_, err := repo.GetDetail(ctx, 9999)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestReportRepository_List(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	status := seedCategory(t, gormDB, "Status Report", "status-report")
	casual := seedCategory(t, gormDB, "Casual", "casual")

	seedReport(t, gormDB, author.ID(), status.ID, nil, "Deploy finished", "Rolled out v2 to production.", report.ConditionGood)
	seedReport(t, gormDB, author.ID(), status.ID, nil, "Incident review", "The DEPLOY pipeline broke.", report.ConditionTired)
	seedReport(t, gormDB, author.ID(), casual.ID, nil, "Lunch spot", "Found a great ramen place.", report.ConditionExcellent)

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		summaries, err := repo.List(ctx, report.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, summaries, 3)
	})

	t.Run("query matches title case-insensitively", func(t *testing.T) {
		summaries, err := repo.List(ctx, report.ListFilter{Query: "deploy"})
		require.NoError(t, err)
		assert.Len(t, summaries, 2)
	})

	t.Run("query matches body as well as title", func(t *testing.T) {
		summaries, err := repo.List(ctx, report.ListFilter{Query: "ramen"})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Lunch spot", summaries[0].Title)
	})

	t.Run("category filter narrows results", func(t *testing.T) {
		summaries, err := repo.List(ctx, report.ListFilter{CategoryID: status.ID})
		require.NoError(t, err)
		assert.Len(t, summaries, 2)
	})

	t.Run("query and category compose", func(t *testing.T) {
		summaries, err := repo.List(ctx, report.ListFilter{Query: "deploy", CategoryID: casual.ID})
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		summaries, err := repo.List(ctx, report.ListFilter{Query: "nonexistent"})
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}

func TestReportRepository_IncrementViewCount(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	category := seedCategory(t, gormDB, "Status Report", "status-report")
	created := seedReport(t, gormDB, author.ID(), category.ID, nil, "Counter", "Body", report.ConditionNormal)

	t.Run("increment and refresh", func(t *testing.T) {
		require.NoError(t, repo.IncrementViewCount(ctx, created.ID()))

		count, err := repo.GetViewCount(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, uint(1), count)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		const viewers = 20

		var wg sync.WaitGroup
		for i := 0; i < viewers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.IncrementViewCount(ctx, created.ID()))
			}()
		}
		wg.Wait()

		count, err := repo.GetViewCount(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, uint(viewers+1), count)
	})

	t.Run("missing report is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.IncrementViewCount(ctx, 9999))
	})

	t.Run("increment does not bump updated_at", func(t *testing.T) {
		var model models.ReportModel
		require.NoError(t, gormDB.First(&model, created.ID()).Error)
		before := model.UpdatedAt

		require.NoError(t, repo.IncrementViewCount(ctx, created.ID()))

		require.NoError(t, gormDB.First(&model, created.ID()).Error)
		assert.Equal(t, before, model.UpdatedAt)
	})
}

func TestReportRepository_ReplaceTags(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	category := seedCategory(t, gormDB, "Status Report", "status-report")
	tag1 := seedTag(t, gormDB, "golang")
	tag2 := seedTag(t, gormDB, "infra")
	tag3 := seedTag(t, gormDB, "frontend")

	created := seedReport(t, gormDB, author.ID(), category.ID, []uint{tag1.ID, tag2.ID}, "Tags", "Body", report.ConditionNormal)

	t.Run("replace swaps the association set in full", func(t *testing.T) {
		require.NoError(t, repo.ReplaceTags(ctx, created.ID(), []uint{tag3.ID}))

		found, err := repo.GetByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{tag3.ID}, found.TagIDs())
	})

	t.Run("replace with empty set clears associations", func(t *testing.T) {
		require.NoError(t, repo.ReplaceTags(ctx, created.ID(), nil))

		found, err := repo.GetByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Empty(t, found.TagIDs())
	})
}

func TestReportRepository_TransactionRollback(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	txManager := db.NewTransactionManager(gormDB)
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	category := seedCategory(t, gormDB, "Status Report", "status-report")

	r, err := report.NewReport(author.ID(), category.ID, nil, "Doomed", "Body", nil, report.ConditionNormal)
	require.NoError(t, err)

	err = txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, r); err != nil {
			return err
		}
		return fmt.Errorf("forced failure after report insert")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, gormDB.Model(&models.ReportModel{}).Count(&count).Error)
	assert.Zero(t, count, "rolled back report must not be persisted")
}

func TestReportRepository_DeleteCascades(t *testing.T) {
	gormDB := setupTestDB(t)
	repo := NewReportRepository(gormDB, logger.NewLogger())
	commentRepo := NewCommentRepository(gormDB)
	ctx := context.Background()

	author := seedUser(t, gormDB, "yamada", "EMP001")
	category := seedCategory(t, gormDB, "Status Report", "status-report")
	tag := seedTag(t, gormDB, "golang")

	created := seedReport(t, gormDB, author.ID(), category.ID, []uint{tag.ID}, "Doomed", "Body", report.ConditionNormal)

	comment, err := report.NewComment(created.ID(), author.ID(), "So long")
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(ctx, comment))

	require.NoError(t, repo.Delete(ctx, created.ID()))

	var commentCount, tagRowCount int64
	require.NoError(t, gormDB.Model(&models.CommentModel{}).Where("report_id = ?", created.ID()).Count(&commentCount).Error)
	require.NoError(t, gormDB.Model(&models.ReportTagModel{}).Where("report_id = ?", created.ID()).Count(&tagRowCount).Error)
	assert.Zero(t, commentCount, "comments must cascade with the report")
	assert.Zero(t, tagRowCount, "tag associations must cascade with the report")

	t.Run("deleting a missing report returns not found", func(t *testing.T) {
		err := repo.Delete(ctx, created.ID())
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}
