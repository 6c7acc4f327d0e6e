package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/domain/user"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/migrations"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/models"
	"github.com/nippo-inc/nippo/internal/infrastructure/repository"
	"github.com/nippo-inc/nippo/internal/shared/db"
	apperrors "github.com/nippo-inc/nippo/internal/shared/errors"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/services/markdown"
)

type testEnv struct {
	db           *gorm.DB
	reportRepo   report.Repository
	commentRepo  report.CommentRepository
	categoryRepo report.CategoryRepository
	tagRepo      report.TagRepository
	userRepo     user.Repository
	txManager    *db.TransactionManager
	author       *user.User
	category     *report.Category
	tag          *report.Tag
}

type fakeNotifier struct {
	calls chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan string, 1)}
}

func (f *fakeNotifier) SendDistressNotification(to, authorName, reportTitle string, reportID uint) error {
	f.calls <- authorName
	return nil
}

type fakeImageStore struct {
	removed []string
}

func (f *fakeImageStore) Remove(reference string) error {
	f.removed = append(f.removed, reference)
	return nil
}

func setupEnv(t *testing.T) *testEnv {
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

	log := logger.NewLogger()
	env := &testEnv{
		db:           gormDB,
		reportRepo:   repository.NewReportRepository(gormDB, log),
		commentRepo:  repository.NewCommentRepository(gormDB),
		categoryRepo: repository.NewCategoryRepository(gormDB),
		tagRepo:      repository.NewTagRepository(gormDB),
		userRepo:     repository.NewUserRepository(gormDB, log),
		txManager:    db.NewTransactionManager(gormDB),
	}

	author, err := user.NewUser("yamada", "hash", "EMP001", "", "", "")
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Create(context.Background(), author))
	env.author = author

	env.category = &report.Category{Name: "Status Report", Slug: "status-report"}
	require.NoError(t, env.categoryRepo.Create(context.Background(), env.category))

	env.tag = &report.Tag{Name: "golang"}
	require.NoError(t, env.tagRepo.Create(context.Background(), env.tag))

	return env
}

func (e *testEnv) createUC(notifier *fakeNotifier) *CreateReportUseCase {
	log := logger.NewLogger()
	return NewCreateReportUseCase(
		e.reportRepo, e.categoryRepo, e.tagRepo, e.userRepo,
		e.txManager, notifier, "manager@nippo.local", log,
	)
}

func TestCreateReportUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("create persists report and tags together", func(t *testing.T) {
		env := setupEnv(t)
		uc := env.createUC(newFakeNotifier())

		created, err := uc.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			TagIDs:     []uint{env.tag.ID},
			Title:      "Monday",
			Body:       "Shipped the release.",
			Condition:  "good",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID())

		found, err := env.reportRepo.GetByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{env.tag.ID}, found.TagIDs())
	})

	t.Run("empty condition defaults to normal", func(t *testing.T) {
		env := setupEnv(t)
		uc := env.createUC(newFakeNotifier())

		created, err := uc.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "No condition",
			Body:       "Body",
		})
		require.NoError(t, err)
		assert.Equal(t, report.ConditionNormal, created.Condition())
	})

	t.Run("unknown category is a field validation error", func(t *testing.T) {
		env := setupEnv(t)
		uc := env.createUC(newFakeNotifier())

		_, err := uc.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: 9999,
			Title:      "Title",
			Body:       "Body",
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Fields, "category_id")
	})

	t.Run("unknown tag is a field validation error and nothing is persisted", func(t *testing.T) {
		env := setupEnv(t)
		uc := env.createUC(newFakeNotifier())

		_, err := uc.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			TagIDs:     []uint{9999},
			Title:      "Title",
			Body:       "Body",
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Fields, "tag_ids")

		var count int64
		require.NoError(t, env.db.Model(&models.ReportModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("distress condition notifies the manager", func(t *testing.T) {
		env := setupEnv(t)
		notifier := newFakeNotifier()
		uc := env.createUC(notifier)

		_, err := uc.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Rough week",
			Body:       "Struggling with the workload.",
			Condition:  "bad",
		})
		require.NoError(t, err)

		select {
		case authorName := <-notifier.calls:
			assert.Equal(t, "yamada", authorName)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a distress notification")
		}
	})

	t.Run("normal condition sends no notification", func(t *testing.T) {
		env := setupEnv(t)
		notifier := newFakeNotifier()
		uc := env.createUC(notifier)

		_, err := uc.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Fine week",
			Body:       "All good.",
			Condition:  "good",
		})
		require.NoError(t, err)

		select {
		case <-notifier.calls:
			t.Fatal("unexpected notification for a non-distress report")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestGetReportUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("get renders body and counts the view", func(t *testing.T) {
		env := setupEnv(t)
		createUC := env.createUC(newFakeNotifier())
		getUC := NewGetReportUseCase(env.reportRepo, markdown.NewService(), logger.NewLogger())

		created, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Markdown",
			Body:       "# Heading\n\nSome **bold** text.",
		})
		require.NoError(t, err)

		result, err := getUC.Execute(ctx, created.ID())
		require.NoError(t, err)

		assert.Equal(t, uint(1), result.Detail.ViewCount, "response must reflect this view")
		assert.Contains(t, result.BodyHTML, "<strong>bold</strong>")

		result, err = getUC.Execute(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, uint(2), result.Detail.ViewCount)
	})

	t.Run("missing report is not found and counts nothing", func(t *testing.T) {
		env := setupEnv(t)
		getUC := NewGetReportUseCase(env.reportRepo, markdown.NewService(), logger.NewLogger())

		_, err := getUC.Execute(ctx, 9999)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestUpdateReportUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("author can update and tag set is replaced", func(t *testing.T) {
		env := setupEnv(t)
		createUC := env.createUC(newFakeNotifier())
		updateUC := NewUpdateReportUseCase(env.reportRepo, env.categoryRepo, env.tagRepo, env.txManager, logger.NewLogger())

		otherTag := &report.Tag{Name: "infra"}
		require.NoError(t, env.tagRepo.Create(ctx, otherTag))

		created, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			TagIDs:     []uint{env.tag.ID},
			Title:      "Before",
			Body:       "Body",
		})
		require.NoError(t, err)

		updated, err := updateUC.Execute(ctx, UpdateReportCommand{
			ReportID:   created.ID(),
			ActorID:    env.author.ID(),
			CategoryID: env.category.ID,
			TagIDs:     []uint{otherTag.ID},
			Title:      "After",
			Body:       "New body",
			Condition:  "tired",
		})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Title())

		found, err := env.reportRepo.GetByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{otherTag.ID}, found.TagIDs())
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		env := setupEnv(t)
		createUC := env.createUC(newFakeNotifier())
		updateUC := NewUpdateReportUseCase(env.reportRepo, env.categoryRepo, env.tagRepo, env.txManager, logger.NewLogger())

		intruder, err := user.NewUser("suzuki", "hash", "EMP002", "", "", "")
		require.NoError(t, err)
		require.NoError(t, env.userRepo.Create(ctx, intruder))

		created, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Mine",
			Body:       "Body",
		})
		require.NoError(t, err)

		_, err = updateUC.Execute(ctx, UpdateReportCommand{
			ReportID:   created.ID(),
			ActorID:    intruder.ID(),
			CategoryID: env.category.ID,
			Title:      "Hijacked",
			Body:       "Body",
			Condition:  "normal",
		})
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("missing report is not found, not forbidden", func(t *testing.T) {
		env := setupEnv(t)
		updateUC := NewUpdateReportUseCase(env.reportRepo, env.categoryRepo, env.tagRepo, env.txManager, logger.NewLogger())

		_, err := updateUC.Execute(ctx, UpdateReportCommand{
			ReportID:   9999,
			ActorID:    env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Title",
			Body:       "Body",
			Condition:  "normal",
		})
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestDeleteReportUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("author can delete and the image file goes with the report", func(t *testing.T) {
		env := setupEnv(t)
		createUC := env.createUC(newFakeNotifier())
		images := &fakeImageStore{}
		deleteUC := NewDeleteReportUseCase(env.reportRepo, images, logger.NewLogger())

		image := "/uploads/abc123.png"
		created, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Gone soon",
			Body:       "Body",
			Image:      &image,
		})
		require.NoError(t, err)

		require.NoError(t, deleteUC.Execute(ctx, DeleteReportCommand{ReportID: created.ID(), ActorID: env.author.ID()}))

		_, err = env.reportRepo.GetByID(ctx, created.ID())
		assert.True(t, apperrors.IsNotFoundError(err))
		assert.Equal(t, []string{image}, images.removed)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		env := setupEnv(t)
		createUC := env.createUC(newFakeNotifier())
		deleteUC := NewDeleteReportUseCase(env.reportRepo, &fakeImageStore{}, logger.NewLogger())

		intruder, err := user.NewUser("suzuki", "hash", "EMP002", "", "", "")
		require.NoError(t, err)
		require.NoError(t, env.userRepo.Create(ctx, intruder))

		created, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Mine",
			Body:       "Body",
		})
		require.NoError(t, err)

		err = deleteUC.Execute(ctx, DeleteReportCommand{ReportID: created.ID(), ActorID: intruder.ID()})
		assert.True(t, apperrors.IsForbiddenError(err))
	})
}

func TestAddCommentUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("comment is attached with the acting user as author", func(t *testing.T) {
		env := setupEnv(t)
		createUC := env.createUC(newFakeNotifier())
		commentUC := NewAddCommentUseCase(env.reportRepo, env.commentRepo, logger.NewLogger())

		created, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      "Post",
			Body:       "Body",
		})
		require.NoError(t, err)

		comment, err := commentUC.Execute(ctx, AddCommentCommand{
			ReportID: created.ID(),
			AuthorID: env.author.ID(),
			Text:     "Nice!",
		})
		require.NoError(t, err)
		assert.Equal(t, env.author.ID(), comment.AuthorID())

		views, err := env.commentRepo.ListByReport(ctx, created.ID())
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("commenting on a missing report is not found", func(t *testing.T) {
		env := setupEnv(t)
		commentUC := NewAddCommentUseCase(env.reportRepo, env.commentRepo, logger.NewLogger())

		_, err := commentUC.Execute(ctx, AddCommentCommand{
			ReportID: 9999,
			AuthorID: env.author.ID(),
			Text:     "Hello?",
		})
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestListReportsUseCase(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	createUC := env.createUC(newFakeNotifier())
	listUC := NewListReportsUseCase(env.reportRepo, env.categoryRepo)

	for _, title := range []string{"Deploy report", "Incident review", "Casual Friday"} {
		_, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: env.category.ID,
			Title:      title,
			Body:       "Body",
		})
		require.NoError(t, err)
	}

	summaries, err := listUC.Execute(ctx, ListReportsQuery{Query: "deploy"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Deploy report", summaries[0].Title)

	summaries, err = listUC.Execute(ctx, ListReportsQuery{})
	require.NoError(t, err)
	assert.Len(t, summaries, 3)

	t.Run("category slug filter resolves to the category", func(t *testing.T) {
		casual := &report.Category{Name: "Casual", Slug: "casual"}
		require.NoError(t, env.categoryRepo.Create(ctx, casual))

		_, err := createUC.Execute(ctx, CreateReportCommand{
			AuthorID:   env.author.ID(),
			CategoryID: casual.ID,
			Title:      "Lunch notes",
			Body:       "Body",
		})
		require.NoError(t, err)

		summaries, err := listUC.Execute(ctx, ListReportsQuery{CategorySlug: "casual"})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Lunch notes", summaries[0].Title)
	})

	t.Run("unknown slug matches nothing", func(t *testing.T) {
		summaries, err := listUC.Execute(ctx, ListReportsQuery{CategorySlug: "no-such-category"})
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}
