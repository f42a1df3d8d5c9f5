package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starborg-web/internal/auth"
	"starborg-web/internal/config"
	"starborg-web/internal/db"
	"starborg-web/internal/dice"
	"starborg-web/internal/game"
	"starborg-web/internal/http/router"
	"starborg-web/internal/http/views"
	"starborg-web/internal/logging"
	"starborg-web/internal/random"
	"starborg-web/internal/security"
)

func main() {
	configFile := flag.String("config", "config/app.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.UsesDefaultSecret() {
		slog.Warn("Using the built-in development secret, set SECRET_KEY in production")
	}

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if n, err := database.DeleteExpiredSessions(ctx, time.Now()); err != nil {
		slog.Warn("Failed to purge expired sessions", "error", err)
	} else if n > 0 {
		slog.Info("Purged expired sessions", "count", n)
	}

	seed, err := random.NewSeed()
	if err != nil {
		return err
	}
	renderer, err := views.New()
	if err != nil {
		return err
	}
	sessionStore := security.NewSessionStore([]byte(cfg.Secret), database, security.SessionOptions{
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.SecureCookies,
	})

	// Setup router
	r := router.Setup(router.Deps{
		DB:          database,
		Sessions:    sessionStore,
		Auth:        auth.NewService(database),
		Game:        game.NewService(database, dice.NewRoller(seed)),
		Views:       renderer,
		AuthLimiter: security.NewRateLimiter(cfg.LoginRatePerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.Port, "driver", database.Driver())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
