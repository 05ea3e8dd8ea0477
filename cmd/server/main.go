package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/attendance/internal/app"
	"github.com/mmynk/attendance/internal/auth"
	"github.com/mmynk/attendance/internal/config"
	"github.com/mmynk/attendance/internal/metrics"
	"github.com/mmynk/attendance/internal/mirror"
	"github.com/mmynk/attendance/internal/remote"
	"github.com/mmynk/attendance/internal/roster"
	"github.com/mmynk/attendance/internal/storage"
	"github.com/mmynk/attendance/internal/storage/backend"
	"github.com/mmynk/attendance/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(getEnv("ROSTER_CONFIG", "config.yaml"), getEnv("ROSTER_ENV_FILE", ".env"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Sync either through another server's group store or a local database.
	var (
		store storage.GroupStore
		rem   remote.Remote
	)
	if cfg.Remote.URL != "" {
		rem = remote.NewClient(nil, cfg.Remote.URL, cfg.Remote.Token)
		slog.Info("Syncing through remote group store", "url", cfg.Remote.URL)
	} else {
		store, err = backend.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()
		rem = remote.NewStoreRemote(store)
		slog.Info("Storage initialized", "driver", cfg.Database.Driver)
	}

	met := metrics.New()
	a := app.New(rem, mirror.New(cfg.MirrorPath), met, app.Options{
		Groups: cfg.Groups,
		Features: roster.Features{
			Notes:          cfg.Features.Notes,
			TimedResults:   cfg.Features.TimedResults,
			RecurringDates: cfg.Features.RecurringDates,
		},
		Location: loc,
	})
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	gate, err := newPasswordGate(cfg.Auth)
	if err != nil {
		return err
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	router, err := newRouter(routerDeps{
		app:        a,
		gate:       gate,
		jwtManager: jwtManager,
		store:      store,
		syncToken:  cfg.SyncToken,
		metrics:    met,
		staticPath: cfg.StaticPath,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr: cfg.Listen,
		// Wrap with h2c for HTTP/2 without TLS (required for Connect)
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	poller := remote.NewPoller(rem, cfg.PollInterval, a.Merge, met)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", cfg.Listen, "groups", len(cfg.Groups))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return poller.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newPasswordGate builds the login gate. A plain password in the
// configuration is hashed at startup.
func newPasswordGate(cfg config.AuthConfig) (*auth.PasswordGate, error) {
	hash := cfg.PasswordHash
	if hash == "" {
		slog.Warn("Using plain auth password from configuration, set password_hash instead")
		var err error
		hash, err = auth.HashPassword(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash auth password: %w", err)
		}
	}
	return auth.NewPasswordGate(cfg.Username, hash)
}
