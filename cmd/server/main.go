package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familyaid/internal/config"
	"familyaid/internal/database"
	"familyaid/internal/forms"
	"familyaid/internal/handlers"
	"familyaid/internal/logging"
	"familyaid/internal/repository"
	"familyaid/internal/security"
	"familyaid/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	host, _ := os.Hostname()
	logger := logging.New(log.Default(), logging.Options{
		RollbarToken: cfg.RollbarToken,
		Environment:  cfg.Env,
		ServerHost:   host,
		Debug:        cfg.Debug,
	})
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(database.Options{
		Type: cfg.DatabaseType,
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	logger.Info("Database connection established", map[string]any{"type": cfg.DatabaseType})

	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	validator, err := forms.New()
	if err != nil {
		log.Fatalf("Failed to initialize validator: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	activityService := service.NewActivityService(activityRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, validator, activityService)
	if err := settingsService.Load(ctx); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	emailService, err := service.NewEmailService(ctx, cfg.SESRegion, cfg.SESFromEmail, settingsService.Get().SiteName, logger)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	tokens := security.NewTokenIssuer(cfg.SecretKey)
	csrf := security.NewCSRFGenerator(cfg.SecretKey)
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Close()

	authService := service.NewAuthService(userRepo, sessionRepo, settingsService, validator, tokens, cfg.SessionDuration)
	userService := service.NewUserService(userRepo, settingsService, validator, activityService)
	familyService := service.NewFamilyService(familyRepo, memberRepo, settingsService, validator, activityService)
	requestService := service.NewRequestService(requestRepo, familyRepo, settingsService, validator, activityService)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, emailService, settingsService, validator, activityService, logger)
	statsService := service.NewStatsService(familyRepo, requestRepo, userRepo)
	exportService := service.NewExportService(userRepo, familyRepo, memberRepo, requestRepo, notificationRepo)

	if cfg.RootUsername != "" {
		created, err := authService.BootstrapRoot(ctx, cfg.RootUsername, cfg.RootPassword)
		if err != nil {
			log.Fatalf("Failed to create root account: %v", err)
		}
		if created {
			logger.Info("Root account created", map[string]any{"username": cfg.RootUsername})
		}
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, csrf, limiter, logger)
	authHandler := handlers.NewAuthHandler(authService, familyService, settingsService, csrf, logger)
	headHandler := handlers.NewHeadHandler(familyService, requestService, notificationService, logger)
	adminHandler := handlers.NewAdminHandler(handlers.AdminServices{
		Families:      familyService,
		Requests:      requestService,
		Notifications: notificationService,
		Users:         userService,
		Settings:      settingsService,
		Stats:         statsService,
		Export:        exportService,
		Activity:      activityService,
	}, logger)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, middleware, authHandler, headHandler, adminHandler)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.Logging(logger, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(ctx, authService, logger, cfg.SessionCleanupInterval)

	go func() {
		logger.Info("Server starting on http://localhost" + addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(ctx context.Context, authService *service.AuthService, logger logging.Logger, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := authService.CleanupExpiredSessions(ctx)
			if err != nil {
				logger.Error("Error cleaning up expired sessions", err)
				continue
			}
			logger.Debug("Expired sessions cleaned up", map[string]any{"removed": removed})
		}
	}
}
