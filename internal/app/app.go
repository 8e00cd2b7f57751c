package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpcontroller "github.com/KarpovAlexandrGo/task-manager/internal/controller/http"
	"github.com/KarpovAlexandrGo/task-manager/internal/metrics"
	"github.com/KarpovAlexandrGo/task-manager/internal/repo/memory"
	"github.com/KarpovAlexandrGo/task-manager/internal/repo/postgres"
	redisrepo "github.com/KarpovAlexandrGo/task-manager/internal/repo/redis"
	"github.com/KarpovAlexandrGo/task-manager/internal/usecase"
	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
)

type App struct {
	Server          *http.Server
	wg              sync.WaitGroup
	shutdownTimeout time.Duration
	closers         []func()
}

func NewApp() (*App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New собирает приложение из готовой конфигурации.
func New(cfg Config) (*App, error) {
	logger.Setup(cfg.LogLevel)

	a := &App{shutdownTimeout: cfg.ShutdownTimeout}
	m := metrics.New()

	// Инициализация репозиториев
	taskRepo, err := a.initRepository(cfg)
	if err != nil {
		return nil, err
	}
	m.RegisterTaskCount(func() float64 {
		n, err := taskRepo.Count(context.Background())
		if err != nil {
			logger.Log.WithError(err).Warn("Failed to count tasks")
			return 0
		}
		return float64(n)
	})

	opts := []usecase.Option{usecase.WithMetrics(m)}
	if cache := a.initCache(cfg); cache != nil {
		opts = append(opts, usecase.WithCache(cache, cfg.CacheTTL))
	}

	// Инициализация use case
	taskUseCase := usecase.NewTaskUseCase(taskRepo, opts...)

	a.Server = &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           setupRouter(cfg, taskUseCase, m),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func (a *App) initRepository(cfg Config) (usecase.TaskRepository, error) {
	if cfg.StorageDriver != StoragePostgres {
		logger.Log.Info("Using in-memory task store")
		return memory.NewTaskStore(), nil
	}

	dbPool, err := initDB(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, dbPool.Close)
	return postgres.NewTaskRepository(dbPool), nil
}

func initDB(dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbPool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, err
	}

	logger.Log.Info("Connected to database successfully")
	return dbPool, nil
}

// initCache возвращает nil, если Redis не настроен или недоступен: сервис работает без кэша.
// Кэш подключается только к postgres. Хранилище в памяти пустеет при рестарте и у каждого
// экземпляра свое, а поколение в Redis общее и переживает процесс.
func (a *App) initCache(cfg Config) usecase.CacheRepository {
	if cfg.RedisAddr == "" {
		return nil
	}
	if cfg.StorageDriver != StoragePostgres {
		logger.Log.WithField("storage_driver", cfg.StorageDriver).Warn("List cache requires postgres storage, cache disabled")
		return nil
	}

	cache := redisrepo.NewCacheRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		logger.Log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("Redis unavailable, list cache disabled")
		_ = cache.Close()
		return nil
	}

	a.closers = append(a.closers, func() { _ = cache.Close() })
	logger.Log.WithField("addr", cfg.RedisAddr).Info("Connected to Redis successfully")
	return cache
}

func setupRouter(cfg Config, taskUC usecase.TaskUseCase, m *metrics.Metrics) *chi.Mux {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID,
		httpcontroller.RequestIDHeader,
		middleware.RealIP,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger.Log, NoColor: true}),
		m.Middleware,
		httpcontroller.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", "X-No-Compression"},
			AllowCredentials: true,
		}),
		httpcontroller.SecureHeaders,
		httpcontroller.Compress(5),
		middleware.RequestSize(cfg.RequestBodyLimit),
		middleware.Timeout(cfg.APITimeout),
	)

	router.NotFound(httpcontroller.NotFound)
	router.MethodNotAllowed(httpcontroller.NotFound)

	router.Get("/healthcheck", httpcontroller.Healthcheck)
	router.Handle("/metrics", m.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	httpcontroller.NewTaskHandler(taskUC).RegisterRoutes(router)

	return router
}

func (a *App) Run() error {
	defer a.close()

	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		select {
		case <-sig:
		case <-serverCtx.Done():
			return
		}
		logger.Log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(serverCtx, a.shutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Log.Error("Graceful shutdown timed out")
			}
			logger.Log.WithError(err).Error("HTTP server shutdown failed")
		}
	}()

	logger.Log.Info("Starting server on " + a.Server.Addr)
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		serverStopCtx()
		a.wg.Wait()
		return fmt.Errorf("server failed: %w", err)
	}

	a.wg.Wait()
	logger.Log.Info("Server stopped gracefully")
	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
