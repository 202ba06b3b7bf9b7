// Package server initializes and runs the job-portal server: it opens the
// database, applies migrations, wires the account service to the object
// store, and serves the HTTP API until shut down.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/careerhub/jobportal/internal/logging"
	"github.com/careerhub/jobportal/internal/objstore"
	"github.com/careerhub/jobportal/internal/server/auth"
	"github.com/careerhub/jobportal/internal/server/config"
	"github.com/careerhub/jobportal/internal/server/httpapi"
	"github.com/careerhub/jobportal/internal/server/repositories/repomanager"
	"github.com/careerhub/jobportal/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	uploader := objstore.NewClient(cfg, logger)
	svc := services.NewAccountService(db, m, uploader, auth.NewBcryptHasher(), logger, cfg)
	h := httpapi.NewHandler(svc, logger, []byte(cfg.SecretKey), cfg.StagingDir)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(cfg.EndpointAddrHTTP, h, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or the listener fails, then
// drains in-flight requests and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "http server failed", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
