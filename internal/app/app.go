package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/handlers"
	"github.com/GlebRadaev/gamehost/internal/metrics"
	"github.com/GlebRadaev/gamehost/internal/panel"
	"github.com/GlebRadaev/gamehost/internal/pg"
	"github.com/GlebRadaev/gamehost/internal/queue"
	"github.com/GlebRadaev/gamehost/internal/repo"
	"github.com/GlebRadaev/gamehost/internal/scheduler"
	"github.com/GlebRadaev/gamehost/internal/service"
	"github.com/GlebRadaev/gamehost/pkg/auth"
	"github.com/GlebRadaev/gamehost/pkg/clients"
	"github.com/GlebRadaev/gamehost/pkg/logger"
)

const httpShutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg    *config.Config
	api    *handlers.Handlers
	srv    *service.Services
	repo   *repo.Repositories
	engine *scheduler.Engine

	pool  *pgxpool.Pool
	redis *redis.Client

	httpDone chan struct{}
	errCh    chan error
	wg       sync.WaitGroup
	ready    bool
}

func New() *Application {
	return &Application{
		errCh:    make(chan error),
		httpDone: make(chan struct{}),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.pool = pool
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	redisClient, err := queue.Connect(ctx, cfg.Redis)
	if err != nil {
		zap.L().Error("redis connection failed: ", zap.Error(err))
		return fmt.Errorf("can't connect to redis: %w", err)
	}
	a.redis = redisClient

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	clk := clock.SystemClock{}
	panelClient := panel.New(cfg.Panel, clients.NewHTTPClient(cfg.Panel.Timeout), m)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(cfg, a.repo, panelClient, clk)

	a.engine = scheduler.New(scheduler.Config{
		StartupDelay: cfg.Scheduler.StartupDelay,
		AllowList:    cfg.Scheduler.AllowList,
	}, a.repo.JobRunRepo, queue.New(redisClient, ""), clk, m)
	if err := registerJobs(a.engine, cfg, a.srv.MaintenanceService, a.srv.ProvisionService); err != nil {
		return fmt.Errorf("can't register jobs: %w", err)
	}

	a.api = handlers.New(a.srv, a.engine, auth.NewJWTService(cfg.Secret), registry)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if err = a.startScheduler(ctx); err != nil {
		return fmt.Errorf("can't start scheduler: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer close(a.httpDone)
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), a.httpShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Warn("http server shutdown", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

type drainer interface {
	Shutdown(ctx context.Context) error
}

func (a *Application) httpShutdownTimeout() time.Duration {
	if limit := a.cfg.Scheduler.ShutdownTimeout; limit > 0 && limit < httpShutdownTimeout {
		return limit
	}
	return httpShutdownTimeout
}

func (a *Application) startScheduler(ctx context.Context) error {
	if err := a.engine.Start(ctx); err != nil {
		return err
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.drain(a.engine)
	}()

	return nil
}

// drain stops the engine while the HTTP server shuts down, so SHUTDOWN_TIMEOUT
// bounds the whole shutdown. Stores are closed once both are down.
func (a *Application) drain(engine drainer) {
	sCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Scheduler.ShutdownTimeout)
	defer cancel()
	if err := engine.Shutdown(sCtx); err != nil {
		a.errCh <- fmt.Errorf("scheduler shutdown: %w", err)
	}
	<-a.httpDone
	a.closeStores()
}

func (a *Application) closeStores() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			zap.L().Warn("redis close", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
