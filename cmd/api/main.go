package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/internal/api"
	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/domain"
	"salonbook/internal/events"
	"salonbook/internal/export"
	"salonbook/internal/google"
	"salonbook/internal/logging"
	"salonbook/internal/metrics"
	"salonbook/internal/notify"
	"salonbook/internal/repository"
	"salonbook/internal/service"
	"salonbook/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	carts := initCartRepository(cfg, redisClient, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := service.NewCatalogService(db, &logger)
	if err := catalog.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("catalog warmup failed, will retry on first request")
	}

	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	notifier := initNotifiers(cfg, &logger)

	sheetsWorker := initSheetsWorker(ctx, cfg, db, redisClient, &logger)

	bookingSvc := service.NewBookingService(db, carts, notifier, eventBus, sheetsWorker, cfg.Booking.MaxAdvanceDays, &logger)
	bookingSvc.SetRateLimit(cfg.Booking.RateLimitRequests, time.Duration(cfg.Booking.RateLimitWindow)*time.Second)
	cartSvc := service.NewCartService(catalog, carts, &logger)

	var exporter *export.Exporter
	if cfg.Exports.Path != "" {
		exporter = export.NewExporter(bookingSvc, cfg.Exports.Path, &logger)
	}

	var emailSender api.EmailSender
	if cfg.Notifications.Email.Enabled {
		emailSender = notify.NewEmailNotifier(cfg.Notifications.Email)
	}

	httpServer := api.NewHTTPServer(cfg.HTTP, db, catalog, cartSvc, bookingSvc, emailSender, exporter, &logger)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initCartRepository picks redis-backed carts with in-memory failover when
// redis is configured, pure in-memory otherwise.
func initCartRepository(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.CartRepository {
	ttl := time.Duration(cfg.Booking.SessionTTL) * time.Second
	memory := repository.NewMemoryCartRepository(ttl)

	if redisClient == nil {
		return memory
	}

	primary := repository.NewRedisCartRepository(redisClient, ttl)
	return repository.NewFailoverCartRepository(primary, memory, logger)
}

func initNotifiers(cfg *config.Config, logger *zerolog.Logger) domain.Notifier {
	multi := notify.NewMultiNotifier(logger)

	if cfg.Notifications.Email.Enabled {
		multi.AddChannel("email", notify.NewEmailNotifier(cfg.Notifications.Email))
		logger.Info().Msg("email notifications enabled")
	}

	if cfg.Notifications.Telegram.Enabled {
		tg, err := notify.NewTelegramNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram init failed, continuing without telegram")
		} else {
			multi.AddChannel("telegram", tg)
			logger.Info().Msg("telegram notifications enabled")
		}
	}

	return multi
}

func initSheetsWorker(ctx context.Context, cfg *config.Config, db *database.DB, redisClient *redis.Client, logger *zerolog.Logger) domain.SyncWorker {
	if cfg.Google.CredentialsFile == "" || cfg.Google.BookingsSpreadSheetID == "" {
		return nil
	}

	sheetsService, err := google.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.BookingsSpreadSheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}
	logger.Info().Msg("google sheets connected")

	w := worker.NewSheetsWorker(db, sheetsService, redisClient, worker.RetryPolicy{}, logger)
	go w.Start(ctx)
	return w
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	bus.Subscribe(events.EventBookingCreated, func(event *events.Event) error {
		logger.Debug().RawJSON("payload", event.Payload).Msg("booking created event")
		return nil
	})
	bus.Subscribe(events.EventNotificationFailed, func(event *events.Event) error {
		logger.Warn().RawJSON("payload", event.Payload).Msg("notification failed event")
		return nil
	})
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
