package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/nippo-inc/nippo/internal/application/ranking"
	reportusecases "github.com/nippo-inc/nippo/internal/application/report/usecases"
	userusecases "github.com/nippo-inc/nippo/internal/application/user/usecases"
	"github.com/nippo-inc/nippo/internal/infrastructure/auth"
	"github.com/nippo-inc/nippo/internal/infrastructure/config"
	"github.com/nippo-inc/nippo/internal/infrastructure/email"
	"github.com/nippo-inc/nippo/internal/infrastructure/repository"
	"github.com/nippo-inc/nippo/internal/infrastructure/storage"
	"github.com/nippo-inc/nippo/internal/interfaces/http/handlers"
	"github.com/nippo-inc/nippo/internal/interfaces/http/middleware"
	"github.com/nippo-inc/nippo/internal/shared/db"
	"github.com/nippo-inc/nippo/internal/shared/logger"
	"github.com/nippo-inc/nippo/internal/shared/services/markdown"
	"github.com/nippo-inc/nippo/internal/shared/utils"
)

// Router wires the HTTP surface: repositories, usecases, handlers and
// middleware, built from the loaded configuration.
type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	profileHandler  *handlers.ProfileHandler
	reportHandler   *handlers.ReportHandler
	taxonomyHandler *handlers.TaxonomyHandler
	rankingHandler  *handlers.RankingHandler
	uploadHandler   *handlers.UploadHandler
	authMiddleware  *middleware.AuthMiddleware
	uploadDir       string
	logger          logger.Interface
}

func NewRouter(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterTagNames(v)
	}

	userRepo := repository.NewUserRepository(gormDB, log)
	reportRepo := repository.NewReportRepository(gormDB, log)
	commentRepo := repository.NewCommentRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	rankingRepo := repository.NewRankingRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	markdownService := markdown.NewService()

	var notifier email.NotificationService = email.NoopNotificationService{}
	if cfg.Email.Enabled {
		notifier = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     fmt.Sprintf("http://%s", cfg.Server.GetAddr()),
		})
	}

	imageStore, err := storage.NewLocalImageStore(
		cfg.Storage.UploadDir,
		cfg.Storage.BaseURL,
		cfg.Storage.MaxUploadMB,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}

	registerUC := userusecases.NewRegisterUseCase(userRepo, hasher, log)
	loginUC := userusecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	getProfileUC := userusecases.NewGetProfileUseCase(userRepo)
	updateProfileUC := userusecases.NewUpdateProfileUseCase(userRepo, log)

	createReportUC := reportusecases.NewCreateReportUseCase(
		reportRepo, categoryRepo, tagRepo, userRepo,
		txManager, notifier, cfg.Email.ManagerAddress, log,
	)
	getReportUC := reportusecases.NewGetReportUseCase(reportRepo, markdownService, log)
	listReportsUC := reportusecases.NewListReportsUseCase(reportRepo, categoryRepo)
	updateReportUC := reportusecases.NewUpdateReportUseCase(reportRepo, categoryRepo, tagRepo, txManager, log)
	deleteReportUC := reportusecases.NewDeleteReportUseCase(reportRepo, imageStore, log)
	addCommentUC := reportusecases.NewAddCommentUseCase(reportRepo, commentRepo, log)

	rankingService := ranking.NewService(rankingRepo)

	return &Router{
		engine:          engine,
		authHandler:     handlers.NewAuthHandler(registerUC, loginUC, getProfileUC, cfg.Auth.Cookie, log),
		profileHandler:  handlers.NewProfileHandler(getProfileUC, updateProfileUC, log),
		reportHandler:   handlers.NewReportHandler(createReportUC, getReportUC, listReportsUC, updateReportUC, deleteReportUC, addCommentUC, log),
		taxonomyHandler: handlers.NewTaxonomyHandler(categoryRepo, tagRepo, log),
		rankingHandler:  handlers.NewRankingHandler(rankingService),
		uploadHandler:   handlers.NewUploadHandler(imageStore, log),
		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		uploadDir:       cfg.Storage.UploadDir,
		logger:          log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, 200, "", gin.H{"status": "ok"})
	})

	r.engine.Static("/uploads", r.uploadDir)

	v1 := r.engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
		authGroup.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.GetCurrentUser)
	}

	users := v1.Group("/users")
	users.Use(r.authMiddleware.RequireAuth())
	{
		users.GET("/:id", r.profileHandler.GetProfile)
		users.PATCH("/me", r.profileHandler.UpdateProfile)
	}

	// List and detail are public reads; everything that writes requires a
	// session.
	reports := v1.Group("/reports")
	{
		reports.GET("", r.reportHandler.ListReports)
		reports.GET("/:id", r.reportHandler.GetReport)

		authed := reports.Group("")
		authed.Use(r.authMiddleware.RequireAuth())
		{
			authed.POST("", r.reportHandler.CreateReport)
			authed.PUT("/:id", r.reportHandler.UpdateReport)
			authed.DELETE("/:id", r.reportHandler.DeleteReport)
			authed.POST("/:id/comments", r.reportHandler.AddComment)
		}
	}

	taxonomy := v1.Group("")
	taxonomy.Use(r.authMiddleware.RequireAuth())
	{
		taxonomy.GET("/categories", r.taxonomyHandler.ListCategories)
		taxonomy.GET("/tags", r.taxonomyHandler.ListTags)
		taxonomy.POST("/tags", r.taxonomyHandler.CreateTag)
		taxonomy.GET("/rankings", r.rankingHandler.GetDashboard)
		taxonomy.POST("/uploads", r.uploadHandler.UploadImage)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
