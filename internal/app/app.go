package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/health"
	"github.com/allyelvis/pos-kiosk/internal/messaging/kafka"
	"github.com/allyelvis/pos-kiosk/internal/service/cart"
	"github.com/allyelvis/pos-kiosk/internal/service/catalog"
	"github.com/allyelvis/pos-kiosk/internal/service/outbox"
	"github.com/allyelvis/pos-kiosk/internal/service/payment"
	"github.com/allyelvis/pos-kiosk/internal/service/register"
	transport "github.com/allyelvis/pos-kiosk/internal/transport/http"
	"github.com/allyelvis/pos-kiosk/internal/version"
)

// Run собирает кассу и держит её до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := newDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	if cfg.SeedDemoData {
		if err := seedDemoData(deps, logger); err != nil {
			return err
		}
	}

	// Kafka опционален: без брокера события копятся в очереди синхронизации.
	kafkaProducer := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafkaProducer(kafkaProducer, logger)

	reg := register.New(
		cart.New(),
		deps.Orders,
		deps.Products,
		deps.Customers,
		payment.NewMockTerminal(),
		deps.Events,
		cfg.TaxRateBP,
		log.WithField("component", "register"),
	)
	cat := catalog.New(deps.Products, deps.Categories, deps.Customers, log.WithField("component", "catalog"))

	if kafkaProducer != nil {
		publisher := kafka.NewSyncPublisher(kafkaProducer, cfg.KafkaTopic)
		dlq := kafka.NewSyncPublisher(kafkaProducer, kafka.TopicDeadLetterQueue)
		worker := outbox.NewWorker(deps.Events, publisher, dlq, outbox.Config{
			PollInterval: cfg.SyncInterval,
		}, log.WithField("component", "sync-worker"))
		go worker.Run(ctx)
	}

	healthHandler := health.NewHandler(version.String())
	if deps.Store != nil {
		store := deps.Store
		healthHandler.Register("postgres", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(checkCtx)
		})
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	apiServer := transport.NewServer(reg, cat, log.WithField("component", "http"))
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: apiServer.Engine()}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// initKafkaProducer создаёт producer, если заданы брокеры.
// Ошибка подключения не фатальна: касса продолжает работать офлайн.
func initKafkaProducer(brokers string, logger *log.Entry) *kafka.Producer {
	if brokers == "" {
		return nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}
	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer
}

func closeKafkaProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return
	}
	logger.Info("kafka producer closed")
}

// startMetricsServer запускает служебный HTTP-сервер с метриками и health-эндпоинтами.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *health.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
