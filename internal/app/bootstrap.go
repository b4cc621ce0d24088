// Package app — сборка зависимостей сервиса и его жизненный цикл.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manish-env/shopify-order-tracking/config"
	"github.com/manish-env/shopify-order-tracking/internal/kafka"
	"github.com/manish-env/shopify-order-tracking/internal/ports"
	"github.com/manish-env/shopify-order-tracking/internal/repo/postgres"
	"github.com/manish-env/shopify-order-tracking/internal/shopify"
	"github.com/manish-env/shopify-order-tracking/internal/throttle/memory"
	rest "github.com/manish-env/shopify-order-tracking/internal/transport/http"
	"github.com/manish-env/shopify-order-tracking/internal/usecase"
	"github.com/manish-env/shopify-order-tracking/migrations"
	"github.com/manish-env/shopify-order-tracking/pkg/httpx"
	"github.com/manish-env/shopify-order-tracking/pkg/logger"
	"github.com/manish-env/shopify-order-tracking/pkg/metrics"
	"github.com/manish-env/shopify-order-tracking/pkg/telemetry"
)

// App — собранное приложение: HTTP-сервер и ограничитель частоты запросов.
type App struct {
	Logger          ports.Logger   // логгер
	HTTPServer      *http.Server   // HTTP-сервер
	Throttle        ports.Throttle // ограничитель; закрывается в Cleanup
	PruneInterval   time.Duration  // период очистки устаревших отметок ограничителя
	gracefulTimeout time.Duration  // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// idlePruner — ограничитель, которому нужна внешняя периодическая очистка.
type idlePruner interface {
	PruneIdle(ctx context.Context, now time.Time) (int64, error)
}

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// NewThrottle — ограничитель выбранного backend'а. Для postgres создаёт пул
// и, если включено, применяет встроенные миграции.
func NewThrottle(ctx context.Context, cfg *config.Config) (ports.Throttle, error) {
	switch cfg.Throttle.Backend {
	case config.ThrottlePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("throttle postgres pool: %w", err)
		}
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
				pool.Close()
				return nil, fmt.Errorf("throttle migrations: %w", err)
			}
		}
		return postgres.NewThrottleRepository(pool, cfg.Throttle.MaxRequests, cfg.Throttle.Window), nil
	default:
		return memory.NewSlidingWindow(cfg.Throttle.MaxRequests, cfg.Throttle.Window, cfg.Throttle.Shards), nil
	}
}

// NewPublisher — Kafka-публикатор событий поиска либо no-op, если поток выключен.
func NewPublisher(cfg *config.Config) ports.EventPublisher {
	if !cfg.Kafka.Enabled {
		return kafka.NoopPublisher{}
	}
	return kafka.NewPublisher(&kafka.PublisherConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
}

// NewTrackingService — сервис отслеживания поверх клиента магазина.
func NewTrackingService(cfg *config.Config, events ports.EventPublisher, log ports.Logger) (*usecase.TrackingService, error) {
	client, err := shopify.NewClient(shopify.Config{
		StoreDomain: cfg.Shopify.StoreDomain,
		APIVersion:  cfg.Shopify.APIVersion,
		AccessToken: cfg.Shopify.AccessToken,
		Timeout:     cfg.Shopify.Timeout,
		BaseURL:     cfg.Shopify.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return usecase.NewTrackingService(client, events, log, nil), nil
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	fail := func(err error) (*App, Cleanup, error) {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	if cfg.Shopify.AccessToken == "" {
		logg.Warnf(ctx, "shopify access token is empty, order store will reject lookups")
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			StoreDomain: cfg.Shopify.StoreDomain,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Ограничитель частоты запросов.
	throttle, err := NewThrottle(ctx, cfg)
	if err != nil {
		_ = shutdownTrace(context.Background())
		return fail(err)
	}
	logg.Infof(ctx, "throttle backend=%s max=%d window=%s fail_open=%t",
		cfg.Throttle.Backend, cfg.Throttle.MaxRequests, cfg.Throttle.Window, cfg.Throttle.FailOpen)

	// Сборка зависимостей доменного слоя.
	publisher := NewPublisher(cfg)
	service, err := NewTrackingService(cfg, publisher, logg)
	if err != nil {
		_ = publisher.Close()
		_ = throttle.Close()
		_ = shutdownTrace(context.Background())
		return fail(err)
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(service, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, rest.RouterOptions{
		Throttle: throttle,
		ThrottleOptions: httpx.ThrottleOptions{
			Window:   cfg.Throttle.Window,
			FailOpen: cfg.Throttle.FailOpen,
		},
		AllowOrigin:     cfg.HTTP.CORSAllowOrigin,
		OtelServiceName: otelServiceName,
		TrustedProxies:  cfg.HTTP.TrustedProxies,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Throttle:        throttle,
		PruneInterval:   cfg.Throttle.Window,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := publisher.Close(); err != nil {
			logg.Warnf(ctx, "event publisher close error: %v", err)
		}
		if err := throttle.Close(); err != nil {
			logg.Warnf(ctx, "throttle close error: %v", err)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и очистку ограничителя; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	pruneCtx, stopPrune := context.WithCancel(ctx)
	pruneDone := make(chan struct{})
	go func() {
		defer close(pruneDone)
		a.pruneLoop(pruneCtx)
	}()

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	stopPrune()
	<-pruneDone

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}

// pruneLoop — периодическая очистка отметок для ограничителей с внешним хранилищем.
func (a *App) pruneLoop(ctx context.Context) {
	pruner, ok := a.Throttle.(idlePruner)
	if !ok || a.PruneInterval <= 0 {
		return
	}

	ticker := time.NewTicker(a.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := pruner.PruneIdle(ctx, now)
			if err != nil {
				if ctx.Err() == nil {
					a.Logger.Warnf(ctx, "throttle prune failed: %v", err)
				}
				continue
			}
			if n > 0 {
				a.Logger.Infof(ctx, "throttle pruned %d expired hits", n)
			}
		}
	}
}
