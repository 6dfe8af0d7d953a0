package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/RishHolt/Urban-Planning-Sys-sub008/docs" // Swagger docs
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/config"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/database"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/handlers"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/jobs"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/middleware"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/repository"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/rules"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/services"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/internal/storage"
	"github.com/RishHolt/Urban-Planning-Sys-sub008/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Housing Beneficiary API
// @version 1.0
// @description REST API for the Municipal Housing Beneficiary Management System

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Warn if Resend email is not configured
	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Load the eligibility rule table. A broken config is fatal: the
	// evaluator refuses to guess at thresholds.
	ruleTable, err := rules.Load(cfg.RulesConfigPath)
	if err != nil {
		logger.Error("Failed to load eligibility rules", "error", err)
		os.Exit(1)
	}
	logger.Info("Loaded eligibility rules", "programs", len(ruleTable.Programs()))

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, ruleTable, worker, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.POST("/recovery", h.Auth.SendRecoveryCode)
			auth.POST("/recovery/verify", h.Auth.VerifyRecoveryCode)
			auth.POST("/recovery/reset", h.Auth.ResetPassword)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.POST("/users/:user_id/restore", h.User.Restore)
				admin.PUT("/users/:user_id/toggle_status", h.User.ToggleStatus)

				// Final lifecycle decisions
				admin.POST("/applications/:application_id/approve", h.Application.Approve)
				admin.POST("/applications/:application_id/allocate", h.Application.Allocate)
			}

			// Staff routes (application processing)
			staff := protected.Group("")
			staff.Use(middleware.RequireStaff())
			{
				staff.GET("/users", h.User.Index)

				// Beneficiary registry
				staff.GET("/beneficiaries", h.Beneficiary.Index)
				staff.POST("/beneficiaries", h.Beneficiary.Create)
				staff.PUT("/beneficiaries/:beneficiary_id", h.Beneficiary.Update)
				staff.DELETE("/beneficiaries/:beneficiary_id", h.Beneficiary.Archive)
				staff.GET("/beneficiaries/:beneficiary_id/duplicates", h.Beneficiary.CheckDuplicates)

				// Application processing
				staff.GET("/applications/stats", h.Application.GetStats)
				staff.GET("/applications/waitlist", h.Application.GetWaitlist)
				staff.GET("/applications/:application_id/validate", h.Application.Validate)
				staff.POST("/applications/:application_id/evaluate", h.Application.Evaluate)
				staff.PUT("/applications/:application_id/status", h.Application.UpdateStatus)
				staff.POST("/applications/:application_id/not_eligible", h.Application.MarkNotEligible)
				staff.POST("/applications/:application_id/waitlist", h.Application.Waitlist)

				// Document verification
				staff.GET("/documents/pending", h.Document.PendingVerification)
				staff.PUT("/documents/:document_id/verify", h.Document.Verify)
				staff.PUT("/documents/:document_id/reject", h.Document.Reject)

				// Reports and exports
				staff.GET("/reports/waitlist_csv", h.Report.WaitlistCSV)
				staff.GET("/reports/status_csv", h.Report.StatusReportCSV)
				staff.GET("/reports/stats_csv", h.Report.StatsCSV)
				staff.GET("/reports/masterlist_xlsx", h.Report.MasterlistXLSX)
				staff.GET("/reports/applications/:application_id/summary_pdf", h.Report.ApplicationSummaryPDF)

				// Audit trail
				staff.GET("/audits", h.Audit.Index)
				staff.GET("/audits/:entity/:entity_id", h.Audit.ForEntity)

				// Background jobs
				staff.GET("/jobs/status", h.Job.Status)
			}

			// User profile (admin or profile owner)
			protected.GET("/users/:user_id", middleware.RequireStaffOrOwner(), h.User.Show)
			protected.PUT("/users/:user_id", middleware.RequireStaffOrOwner(), h.User.Update)
			protected.PUT("/users/change_password", h.User.ChangePassword)

			// Beneficiary details and household (applicants see their own)
			protected.GET("/beneficiaries/:beneficiary_id", h.Beneficiary.Show)
			protected.GET("/beneficiaries/:beneficiary_id/household", h.Beneficiary.ListHousehold)
			protected.POST("/beneficiaries/:beneficiary_id/household", h.Beneficiary.AddHouseholdMember)
			protected.PUT("/beneficiaries/:beneficiary_id/household/:member_id", h.Beneficiary.UpdateHouseholdMember)
			protected.DELETE("/beneficiaries/:beneficiary_id/household/:member_id", h.Beneficiary.RemoveHouseholdMember)

			// Applications (applicants submit and track their own)
			protected.GET("/applications", h.Application.Index)
			protected.POST("/applications", h.Application.Submit)
			protected.GET("/applications/:application_id", h.Application.Show)
			protected.GET("/applications/:application_id/history", h.Application.StatusHistory)
			protected.POST("/applications/:application_id/cancel", h.Application.Cancel)
			protected.GET("/applications/:application_id/certificate", h.Application.Certificate)

			// Documents
			protected.GET("/applications/:application_id/documents", h.Document.Index)
			protected.POST("/applications/:application_id/documents", h.Document.Upload)
			protected.GET("/documents/:document_id/download", h.Document.Download)

			// Notifications (users manage their own)
			// Static route first so "mark_all_as_read" is not matched as :notification_id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
				notifications.GET("/:notification_id", h.Notification.Show)
				notifications.PUT("/:notification_id", h.Notification.Update)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Sweep the registry for duplicate beneficiary records daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sweeping beneficiary registry for duplicates...")
		return svcs.Beneficiary.SweepDuplicates(ctx)
	})

	// Remind staff about applications sitting in review daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking for stale reviews...")
		return svcs.Application.RemindStaleReviews(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
