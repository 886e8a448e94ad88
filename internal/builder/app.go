package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App bundles the HTTP server with the resources it owns
type App struct {
	server *http.Server
	db     *pgxpool.Pool
	logger *zap.Logger
}

// Run serves until the process receives SIGINT/SIGTERM or the listener fails
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("server failed", zap.Error(err))
		return err
	case sig := <-sigChan:
		a.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("draining in-flight requests")
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("server shutdown failed", zap.Error(err))
		return err
	}

	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("stopped")
	return nil
}
