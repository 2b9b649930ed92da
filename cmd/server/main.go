package main

import (
	"case_team_app_go/clock"
	"case_team_app_go/config"
	"case_team_app_go/db"
	"case_team_app_go/handlers"
	"case_team_app_go/middleware"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"case_team_app_go/services/jobs"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(db.Models()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := services.NewGormRepository(db.DB, cfg.CaseNumberPrefix)
	clk := clock.Real()
	audit := services.NewAuditRecorder(db.DB)
	defer audit.Wait()
	notifier := services.NewEmailNotifier(cfg)

	teamService := services.NewTeamService(repo, clk, audit, notifier)
	billingService := services.NewBillingService(repo, clk, audit, notifier)

	// Nightly team sync
	scheduler, err := jobs.StartScheduler(cfg, teamService)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(handlers.InjectServices(teamService, billingService))
	e.Use(middleware.AuditContext())

	e.GET("/health", handlers.HealthHandler)

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Requests: cfg.APIRateLimit,
		Window:   time.Minute,
	})
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	limiter.StartCleanup(5*time.Minute, stopCleanup)

	api := e.Group("/api")
	api.Use(limiter.Middleware())
	{
		// Cases
		api.POST("/cases", handlers.CreateCaseHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.PUT("/cases/:id/status", handlers.UpdateCaseStatusHandler)
		api.GET("/cases/:id/team", handlers.GetCaseTeamHandler)
		api.POST("/cases/:id/team/assigned", handlers.MarkTeamAssignedHandler)
		api.GET("/cases/:id/billing-summary", handlers.GetBillingSummaryHandler)

		// Assignments
		api.POST("/cases/:id/assignments", handlers.AddAssignmentHandler)
		api.POST("/assignments/:id/activate", handlers.ActivateAssignmentHandler)
		api.PUT("/assignments/:id/status", handlers.UpdateAssignmentStatusHandler)
		api.POST("/assignments/:id/hours", handlers.RecordHoursHandler)
		api.DELETE("/assignments/:id", handlers.RemoveAssignmentHandler)

		// Time entries
		api.POST("/cases/:id/time-entries", handlers.CreateTimeEntryHandler)
		api.GET("/time-entries/:id", handlers.GetTimeEntryHandler)
		api.PUT("/time-entries/:id", handlers.UpdateTimeEntryHandler)
		api.POST("/time-entries/:id/submit", handlers.SubmitTimeEntryHandler)
		api.POST("/time-entries/:id/approve", handlers.ApproveTimeEntryHandler)
		api.POST("/time-entries/:id/reject", handlers.RejectTimeEntryHandler)
		api.POST("/time-entries/:id/reopen", handlers.ReopenTimeEntryHandler)

		// Billing
		api.POST("/billing/mark-billed", handlers.MarkBilledHandler)
		api.GET("/lawyers/:id/utilization", handlers.GetUtilizationHandler)

		// Audit history
		api.GET("/cases/:id/history", handlers.ResourceHistoryHandler(models.ResourceTypeCase))
		api.GET("/assignments/:id/history", handlers.ResourceHistoryHandler(models.ResourceTypeAssignment))
		api.GET("/time-entries/:id/history", handlers.ResourceHistoryHandler(models.ResourceTypeTimeEntry))
	}

	// Start server
	go func() {
		log.Printf("Server starting on %s", cfg.Address())
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
