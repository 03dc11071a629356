// Package server wires configuration, storage, services and the HTTP and
// gRPC boundaries into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/httpapi"
	"github.com/dmitrijs2005/todoapi/internal/server/janitor"
	"github.com/dmitrijs2005/todoapi/internal/server/ratelimit"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/dmitrijs2005/todoapi/internal/server/validation"
	"github.com/dmitrijs2005/todoapi/internal/telemetry"

	gs "github.com/dmitrijs2005/todoapi/internal/server/grpc"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const serviceName = "todoapi"

var (
	setupTracing = telemetry.Setup
	openDB       = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
)

// runner is a long-lived component stopped by cancelling its context.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	runners map[string]runner
	tracing telemetry.ShutdownFunc
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	tracing, err := setupTracing(ctx, serviceName, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}
	fail := func(err error) (*App, error) {
		_ = tracing(context.WithoutCancel(ctx))
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return fail(fmt.Errorf("db init error: %w", err))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fail(fmt.Errorf("db ping error: %w", err))
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return fail(err)
	}

	app, err := newApp(c, logger, db, rm)
	if err != nil {
		_ = db.Close()
		return fail(err)
	}
	app.tracing = tracing
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	sessions := services.NewSessionService(db, rm, c)
	tasks := services.NewTaskService(db, rm)
	limiter := ratelimit.NewPerMinute(c.LoginRateLimit, c.LoginRateBurst)

	j, err := janitor.New(c.JanitorSchedule, sessions, limiter, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		runners: map[string]runner{
			"http":    httpapi.NewServer(c.HTTPAddr, logger, sessions, tasks, validator, limiter),
			"grpc":    gs.NewGRPCServer(c.GRPCAddr, logger, sessions, tasks, validator),
			"janitor": j,
		},
		tracing: func(context.Context) error { return nil },
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

// Run starts every component and blocks until a signal arrives, ctx is
// cancelled or a component fails. The first failure stops the rest.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for name, r := range app.runners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Run(ctx); err != nil {
				app.logger.Error(ctx, "component failed", "component", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	wg.Wait()
	app.logger.Info(ctx, "Stopped, releasing resources")

	if err := app.tracing(context.Background()); err != nil {
		app.logger.Warn(ctx, "tracing shutdown", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
	return firstErr
}
