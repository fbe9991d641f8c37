package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"jobgate/video-studio/internal/config"
	"jobgate/video-studio/internal/handlers"
	"jobgate/video-studio/internal/middleware"
	"jobgate/video-studio/internal/repositories"
	"jobgate/video-studio/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := config.InitLogger()
	log.Info("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	log.Info("✅ Database initialized successfully")

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	checkRepo := repositories.NewQualityCheckRepository(db)
	sessionRepo := repositories.NewRecordingSessionRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	recruiterRepo := repositories.NewRecruiterRepository(db)
	syncLogRepo := repositories.NewSyncLogRepository(db)
	videoViewRepo := repositories.NewVideoViewLogRepository(db)
	profViewRepo := repositories.NewProfileViewLogRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	prefRepo := repositories.NewPreferenceRepository(db)
	templateRepo := repositories.NewTemplateRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	cvParser := services.NewCVParserService()
	notifier := services.NewNotificationService(notifRepo, prefRepo, templateRepo)
	qualityService := services.NewQualityService(videoRepo, checkRepo)
	linkageService := services.NewLinkageService(db, notifier, log)
	interactionService := services.NewInteractionService(db, notifier, log)
	log.Info("✅ Services initialized successfully")

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo, prefRepo, notifier)
	videoHandler := handlers.NewVideoHandler(
		videoRepo,
		sessionRepo,
		storageService,
		linkageService,
		notifier,
	)
	qualityHandler := handlers.NewQualityHandler(qualityService, checkRepo)
	candidateHandler := handlers.NewCandidateHandler(
		userRepo,
		candidateRepo,
		syncLogRepo,
		videoViewRepo,
		profViewRepo,
		notifRepo,
		storageService,
		cvParser,
		linkageService,
	)
	recruiterHandler := handlers.NewRecruiterHandler(
		recruiterRepo,
		candidateRepo,
		favoriteRepo,
		videoViewRepo,
		profViewRepo,
		interactionService,
	)
	notificationHandler := handlers.NewNotificationHandler(notifRepo, prefRepo, notifier)
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "JOBGATE Video Studio API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Users
	api.Post("/users", userHandler.HandleCreate)
	api.Get("/users/:id", userHandler.HandleGet)

	// Videos and quality checks
	videos := api.Group("/videos")
	videos.Post("/", videoHandler.HandleCreate)
	videos.Get("/", videoHandler.HandleList)
	videos.Post("/link-to-cv", videoHandler.HandleLinkToCV)
	videos.Post("/quality-checks", qualityHandler.HandleUpsertCheck)
	videos.Post("/quality-checks/batch", qualityHandler.HandleBatchUpsert)
	videos.Post("/quality-analysis", qualityHandler.HandleAnalyze)
	videos.Get("/:id", videoHandler.HandleGet)
	videos.Put("/:id", videoHandler.HandleUpdate)
	videos.Post("/:id/upload", videoHandler.HandleUpload)
	videos.Get("/:id/recording-sessions", videoHandler.HandleListRecordingSessions)
	videos.Post("/:id/approve", videoHandler.HandleApprove)
	videos.Post("/:id/start-recording", videoHandler.HandleStartRecording)
	videos.Post("/:id/stop-recording", videoHandler.HandleStopRecording)
	videos.Get("/:id/quality-checks", qualityHandler.HandleListChecks)

	// Candidate profiles
	candidate := api.Group("/candidate")
	candidate.Post("/profile", candidateHandler.HandleSaveProfile)
	candidate.Get("/profile/by-user/:userID", candidateHandler.HandleGetProfileByUser)
	candidate.Get("/profile/:id", candidateHandler.HandleGetProfile)
	candidate.Post("/profile/:id/cv", candidateHandler.HandleUploadCV)
	candidate.Post("/profile/:id/link-video", candidateHandler.HandleLinkVideo)
	candidate.Post("/profile/:id/unlink-video", candidateHandler.HandleUnlinkVideo)
	candidate.Post("/profile/:id/recalculate-completeness", candidateHandler.HandleRecalculateCompleteness)
	candidate.Get("/profile/:id/video-stats", candidateHandler.HandleVideoStats)
	candidate.Get("/profile/:id/video-views", candidateHandler.HandleVideoViews)
	candidate.Get("/profile/:id/sync-logs", candidateHandler.HandleSyncLogs)
	candidate.Get("/profile/:id/pending-syncs", candidateHandler.HandlePendingSyncs)
	candidate.Get("/profile/:id/dashboard", candidateHandler.HandleDashboard)

	// Recruiter search and activity
	recruiter := api.Group("/recruiter")
	recruiter.Post("/profile", recruiterHandler.HandleSaveProfile)
	recruiter.Get("/profile/by-user/:userID", recruiterHandler.HandleGetProfileByUser)
	recruiter.Get("/candidates", recruiterHandler.HandleSearch)
	recruiter.Get("/filter-options", recruiterHandler.HandleFilterOptions)
	recruiter.Post("/favorites", recruiterHandler.HandleAddFavorite)
	recruiter.Get("/candidates/:id", recruiterHandler.HandleCandidateDetail)
	recruiter.Post("/candidates/:id/log-video-view", recruiterHandler.HandleLogVideoView)
	recruiter.Post("/candidates/:id/log-profile-view", recruiterHandler.HandleLogProfileView)
	recruiter.Get("/:recruiterID/dashboard", recruiterHandler.HandleDashboard)
	recruiter.Get("/:recruiterID/favorites", recruiterHandler.HandleListFavorites)
	recruiter.Delete("/:recruiterID/favorites/:candidateID", recruiterHandler.HandleRemoveFavorite)

	// Notifications
	notifications := api.Group("/notifications")
	notifications.Get("/", notificationHandler.HandleList)
	notifications.Post("/", notificationHandler.HandleCreate)
	notifications.Post("/bulk", notificationHandler.HandleBulkCreate)
	notifications.Post("/mark-all-as-read", notificationHandler.HandleMarkAllAsRead)
	notifications.Get("/unread-count", notificationHandler.HandleUnreadCount)
	notifications.Get("/summary", notificationHandler.HandleSummary)
	notifications.Get("/stats", notificationHandler.HandleStats)
	notifications.Get("/preferences/:userID", notificationHandler.HandleGetPreferences)
	notifications.Put("/preferences/:userID", notificationHandler.HandleUpdatePreferences)
	notifications.Post("/:id/mark-as-read", notificationHandler.HandleMarkAsRead)
	notifications.Post("/:id/mark-as-unread", notificationHandler.HandleMarkAsUnread)
	notifications.Post("/:id/archive", notificationHandler.HandleArchive)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "JOBGATE Video Studio API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/videos",
				"POST /api/videos/quality-checks",
				"POST /api/candidate/profile",
				"GET /api/recruiter/candidates",
				"GET /api/notifications",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
