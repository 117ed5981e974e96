package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "github.com/bobimat/workshop-tasks/internal/configs"
	"github.com/bobimat/workshop-tasks/internal/export"
	httpapi "github.com/bobimat/workshop-tasks/internal/http"
	"github.com/bobimat/workshop-tasks/internal/services"
	"github.com/bobimat/workshop-tasks/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the workshop task HTTP API and, when configured, the audit drift monitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		sessions, closeSessions, err := newSessionStore()
		if err != nil {
			return err
		}
		defer closeSessions()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if interval := cfg.ReconcileInterval(); interval > 0 {
			reconciler := services.NewReconcileService(store, cfg.ReconcileBatchSize)
			go reconciler.Run(ctx, interval)
			slog.Info("audit drift monitor started", slog.Duration("interval", interval))
		}

		handler := httpapi.NewHandler(
			services.NewAuthService(store, sessions),
			services.NewTaskService(store),
			services.NewAuditService(store.Logs, export.NewRenderer(cfg.ExportLocation())),
			services.NewUserService(store),
		)

		e := echo.New()
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			slog.Info("HTTP server listening", slog.String("addr", cfg.AppURL))
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("server stopped", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		slog.Info("HTTP server shut down gracefully")
		return nil
	},
}

func newSessionStore() (session.Store, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return session.NewMemoryStore(), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(client, cfg.RedisSessionPrefix, cfg.SessionTTL()), client.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
