package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liftlink/backend/internal/config"
	"github.com/liftlink/backend/internal/database"
	logpkg "github.com/liftlink/backend/internal/log"
	"github.com/liftlink/backend/internal/mailer"
	postgresrepo "github.com/liftlink/backend/internal/repository/postgres"
	"github.com/liftlink/backend/internal/service"
	"github.com/liftlink/backend/internal/transport/http/handlers"
	"github.com/liftlink/backend/internal/transport/http/middleware"
	"github.com/liftlink/backend/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logpkg.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}
	logger.Info().Msg("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	postRepo := postgresrepo.NewGymPostRepo(pool)
	interestRepo := postgresrepo.NewInterestRepo(pool)

	// WebSocket hub
	hub := ws.NewHub(logger)
	go hub.Run()
	notifier := ws.NewHubNotifier(hub, logger)

	// Services
	mail := mailer.New(cfg.SMTP, logger)
	authService := service.NewAuthService(userRepo, mail, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.AutoVerify, logger)
	profileService := service.NewProfileService(userRepo)
	sessionService := service.NewSessionService(postRepo, userRepo)
	interestService := service.NewInterestService(interestRepo, postRepo, userRepo, mail, notifier, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	interestHandler := handlers.NewInterestHandler(interestService, logger)

	// Middleware
	auth := middleware.Auth(cfg.Auth.JWTSecret)
	verified := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireVerified(h))
	}

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/verify", authHandler.Verify)
	mux.HandleFunc("POST /api/v1/auth/resend-code", authHandler.ResendCode)

	// Protected - Account
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /api/v1/profile", auth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /api/v1/profile", auth(http.HandlerFunc(profileHandler.Update)))

	// Protected - Discovery (verified accounts only)
	mux.Handle("GET /api/v1/profiles", verified(profileHandler.Discover))
	mux.Handle("GET /api/v1/gym-sessions", verified(sessionHandler.List))
	mux.Handle("POST /api/v1/gym-sessions", verified(sessionHandler.Create))
	mux.Handle("GET /api/v1/gym-sessions/{id}", verified(sessionHandler.Get))
	mux.Handle("PUT /api/v1/gym-sessions/{id}", verified(sessionHandler.Update))
	mux.Handle("DELETE /api/v1/gym-sessions/{id}", verified(sessionHandler.Delete))

	// Protected - Interest requests (verified accounts only)
	mux.Handle("POST /api/v1/interests", verified(interestHandler.Create))
	mux.Handle("GET /api/v1/interests", verified(interestHandler.List))
	mux.Handle("PUT /api/v1/interests/{id}", verified(interestHandler.Respond))
	mux.Handle("GET /api/v1/interests/count", verified(interestHandler.PendingCount))

	// WebSocket (token in query param)
	mux.Handle("GET /api/v1/ws", ws.ServeWS(hub, cfg.Auth.JWTSecret, logger))

	handler := middleware.CORS(cfg.AllowOrigins)(
		middleware.Logging(logger)(
			middleware.Recovery(logger)(mux)))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
