// Command messagely serves the Messagely HTTP API.
//
// @title Messagely API
// @version 1.0
// @description Users register, log in and exchange messages with read receipts.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/user/messagely-go/auth"
	"github.com/user/messagely-go/config"
	"github.com/user/messagely-go/db"
	_ "github.com/user/messagely-go/docs" // Generated Swagger docs
	"github.com/user/messagely-go/events"
	"github.com/user/messagely-go/logging"
	"github.com/user/messagely-go/messages"
	"github.com/user/messagely-go/metrics"
	"github.com/user/messagely-go/ratelimit"
	"github.com/user/messagely-go/users"
)

func main() {
	// .env is optional outside development.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	app := &cli.App{
		Name:   "messagely",
		Usage:  "messaging API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrateUp,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateUp(_ *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := db.RunMigrations(cfg.DB); err != nil {
		return err
	}
	log.Println("Migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(cfg.DB); err != nil {
			return err
		}
		logger.Info(ctx, "migrations applied")
	}

	pool, err := db.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	hasher := auth.NewHasher(cfg.Auth.WorkFactor, cfg.Auth.HashConcurrency)
	tokens, err := auth.NewTokenService(cfg.Auth.SecretKey)
	if err != nil {
		return err
	}

	var throttle auth.Throttle
	if cfg.Redis.Enabled() {
		rdb, err := ratelimit.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return err
		}
		defer rdb.Close()
		throttle = ratelimit.NewLoginLimiter(rdb, cfg.Redis.MaxAttempts, cfg.Redis.Window)
		logger.Info(ctx, "login throttle enabled", "max_attempts", cfg.Redis.MaxAttempts, "window", cfg.Redis.Window.String())
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	broadcaster := events.NewBroadcaster(logger)

	userStore := users.NewStore(pool, hasher)
	authService := auth.NewService(userStore, hasher, tokens, throttle, m)
	messageService := messages.NewService(messages.NewStore(pool), broadcaster, m)

	handler := newRouter(routerDeps{
		Logger:   logger,
		Verifier: tokens,
		Auth:     auth.NewHandlers(authService),
		Users:    users.NewUserHandlers(userStore),
		Messages: messages.NewMessageHandler(messageService, broadcaster),
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
		DB:       pool,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      75 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	srv.RegisterOnShutdown(broadcaster.Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info(context.Background(), "server stopped")
	return nil
}
