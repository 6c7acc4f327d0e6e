package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nippo-inc/nippo/internal/application/report/usecases"
	"github.com/nippo-inc/nippo/internal/domain/report"
	"github.com/nippo-inc/nippo/internal/domain/user"
	"github.com/nippo-inc/nippo/internal/infrastructure/email"
	"github.com/nippo-inc/nippo/internal/infrastructure/persistence/migrations"
	"github.com/nippo-inc/nippo/internal/infrastructure/repository"
	"github.com/nippo-inc/nippo/internal/shared/db"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/services/markdown"
)

type discardImages struct{}

func (discardImages) Remove(string) error { return nil }

type handlerFixture struct {
	router   *gin.Engine
	author   *user.User
	category *report.Category
}

// setupReportHandler mounts the report routes behind a stub auth middleware
// that injects the given user, mirroring what RequireAuth does after token
// verification.
func setupReportHandler(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	reportRepo := repository.NewReportRepository(gormDB, log)
	commentRepo := repository.NewCommentRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB, log)
	txManager := db.NewTransactionManager(gormDB)

	author, err := user.NewUser("yamada", "hash", "EMP001", "", "", "")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), author))

	category := &report.Category{Name: "Status Report", Slug: "status-report"}
	require.NoError(t, categoryRepo.Create(context.Background(), category))

	handler := NewReportHandler(
		usecases.NewCreateReportUseCase(reportRepo, categoryRepo, tagRepo, userRepo, txManager, email.NoopNotificationService{}, "", log),
		usecases.NewGetReportUseCase(reportRepo, markdown.NewService(), log),
		usecases.NewListReportsUseCase(reportRepo, categoryRepo),
		usecases.NewUpdateReportUseCase(reportRepo, categoryRepo, tagRepo, txManager, log),
		usecases.NewDeleteReportUseCase(reportRepo, discardImages{}, log),
		usecases.NewAddCommentUseCase(reportRepo, commentRepo, log),
		log,
	)

	r := gin.New()
	authed := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", author.ID())
		c.Next()
	})
	authed.POST("/reports", handler.CreateReport)
	authed.GET("/reports/:id", handler.GetReport)
	authed.GET("/reports", handler.ListReports)

	return &handlerFixture{router: r, author: author, category: category}
}

func (f *handlerFixture) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func TestReportHandler_CreateReport(t *testing.T) {
	t.Run("valid request returns 201 with the report", func(t *testing.T) {
		f := setupReportHandler(t)

		w := f.postJSON(t, "/api/v1/reports", gin.H{
			"category_id": f.category.ID,
			"title":       "Monday",
			"body":        "Shipped the release.",
			"condition":   "good",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool           `json:"success"`
			Data    ReportResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Monday", resp.Data.Title)
		assert.Equal(t, f.author.ID(), resp.Data.AuthorID)
	})

	t.Run("missing title is rejected with 400", func(t *testing.T) {
		f := setupReportHandler(t)

		w := f.postJSON(t, "/api/v1/reports", gin.H{
			"category_id": f.category.ID,
			"body":        "No title here.",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown condition is rejected with 400", func(t *testing.T) {
		f := setupReportHandler(t)

		w := f.postJSON(t, "/api/v1/reports", gin.H{
			"category_id": f.category.ID,
			"title":       "Title",
			"body":        "Body",
			"condition":   "meh",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown category yields a field error", func(t *testing.T) {
		f := setupReportHandler(t)

		w := f.postJSON(t, "/api/v1/reports", gin.H{
			"category_id": 9999,
			"title":       "Title",
			"body":        "Body",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error struct {
				Fields map[string]string `json:"fields"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error.Fields, "category_id")
	})
}

func TestReportHandler_GetReport(t *testing.T) {
	f := setupReportHandler(t)

	created := f.postJSON(t, "/api/v1/reports", gin.H{
		"category_id": f.category.ID,
		"title":       "Markdown",
		"body":        "Some **bold** text.",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var createResp struct {
		Data ReportResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

	t.Run("detail carries sanitized HTML and the counted view", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reports/%d", createResp.Data.ID), nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data ReportDetailResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Data.BodyHTML, "<strong>bold</strong>")
		assert.Equal(t, uint(1), resp.Data.ViewCount)
		assert.Equal(t, "yamada", resp.Data.Author.Username)
	})

	t.Run("missing report returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/9999", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
