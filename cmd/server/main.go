package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/upeohq/backoffice-backend/internal/config"
	"github.com/upeohq/backoffice-backend/internal/database"
	"github.com/upeohq/backoffice-backend/internal/handler"
	"github.com/upeohq/backoffice-backend/internal/logger"
	"github.com/upeohq/backoffice-backend/internal/mail"
	"github.com/upeohq/backoffice-backend/internal/repository"
	"github.com/upeohq/backoffice-backend/internal/router"
	"github.com/upeohq/backoffice-backend/internal/service"
	"github.com/upeohq/backoffice-backend/internal/validator"
	"github.com/upeohq/backoffice-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Upeo Back Office Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	refreshRepo := repository.NewRefreshTokenRepository(pool)
	inviteRepo := repository.NewInviteRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)
	conversionRepo := repository.NewConversionRepository(pool)

	// ─── Initialize Mail Pipeline ──────────────────────────────────────
	// Requests only enqueue; the worker talks to Mailgun.
	templates := mail.NewTemplates(cfg.AppName, cfg.WebBaseURL)
	outbox := mail.NewEnqueuer(rdb, log)
	mailer := mail.NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, roleRepo, refreshRepo,
		inviteRepo, resetRepo, outbox, templates, log)
	userService := service.NewUserService(userRepo, roleRepo, outbox, templates, log)
	projectService := service.NewProjectService(projectRepo, userRepo, outbox, templates, log)
	leadService := service.NewLeadService(leadRepo, log)
	customerService := service.NewCustomerService(customerRepo, leadRepo, conversionRepo, log)
	interactionService := service.NewInteractionService(interactionRepo, leadRepo, customerRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Project:     handler.NewProjectHandler(projectService),
		Lead:        handler.NewLeadHandler(leadService),
		Customer:    handler.NewCustomerHandler(customerService),
		Interaction: handler.NewInteractionHandler(interactionService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	mailWorker := worker.NewMailWorker(rdb, mailer, log)
	go mailWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the mail worker and let the outbox drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
