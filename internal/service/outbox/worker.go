package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

const (
	defaultPollInterval   = 2 * time.Second
	defaultBatchSize      = 50
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 100 * time.Millisecond
)

var (
	syncPublishAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sync_publish_attempts_total",
		Help: "Total number of order event publish attempts grouped by result.",
	}, []string{"result"})
	syncPendingEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pos_sync_pending_events",
		Help: "Current number of order events waiting for publication.",
	})
	syncOldestPendingAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pos_sync_oldest_pending_age_seconds",
		Help: "Age in seconds of the oldest unpublished order event.",
	})
)

// Config задаёт параметры воркера синхронизации заказов.
// Нулевые значения заменяются значениями по умолчанию.
type Config struct {
	PollInterval   time.Duration
	BatchSize      int
	MaxAttempts    int
	RetryBaseDelay time.Duration
}

// Worker публикует накопленные события заказов во внешний брокер.
// Касса продолжает работать при недоступном брокере: события копятся
// в очереди и уходят, когда связь восстановится (best-effort доставка).
type Worker struct {
	queue        domain.OutboxRepository
	publisher    domain.OutboxPublisher
	dlqPublisher domain.OutboxPublisher
	logger       *log.Entry
	cfg          Config
}

// NewWorker создаёт воркер синхронизации. dlqPublisher может быть nil.
func NewWorker(
	queue domain.OutboxRepository,
	publisher domain.OutboxPublisher,
	dlqPublisher domain.OutboxPublisher,
	cfg Config,
	logger *log.Entry,
) *Worker {
	if logger == nil {
		logger = log.WithField("component", "sync-worker")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryBaseDelay < 0 {
		cfg.RetryBaseDelay = 0
	}

	return &Worker{
		queue:        queue,
		publisher:    publisher,
		dlqPublisher: dlqPublisher,
		logger:       logger,
		cfg:          cfg,
	}
}

// Run опрашивает очередь до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.queue == nil || w.publisher == nil {
		w.logger.Warn("sync worker is disabled: queue or publisher is nil")
		return
	}

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.ProcessOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один цикл: снимает метрики backlog, забирает батч
// и публикует события по одному с retry.
func (w *Worker) ProcessOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	w.refreshBacklogMetrics()

	events, err := w.queue.PullPending(w.cfg.BatchSize)
	if err != nil {
		w.logger.WithError(err).Warn("failed to pull pending events")
		return
	}
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if ctx.Err() != nil {
			return
		}

		if err := w.publishWithRetry(ctx, event); err != nil {
			w.logger.WithError(err).WithFields(log.Fields{
				"event_id":   event.ID,
				"event_type": event.EventType,
			}).Error("event publish failed after retries")
			syncPublishAttempts.WithLabelValues("failed").Inc()

			if dlqErr := w.publishToDLQ(event, err); dlqErr != nil {
				w.logger.WithError(dlqErr).WithField("event_id", event.ID).Warn("failed to publish to DLQ")
				syncPublishAttempts.WithLabelValues("dlq_failed").Inc()
			}
			if markErr := w.queue.MarkFailed(event.ID); markErr != nil {
				w.logger.WithError(markErr).WithField("event_id", event.ID).Warn("failed to mark event as failed")
			}
			continue
		}

		if err := w.queue.MarkSent(event.ID); err != nil {
			w.logger.WithError(err).WithField("event_id", event.ID).Warn("failed to mark event as sent")
		}
	}

	w.refreshBacklogMetrics()
}

func (w *Worker) publishWithRetry(ctx context.Context, event domain.OutboxMessage) error {
	var lastErr error

	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		if err := w.publisher.Publish(event); err == nil {
			syncPublishAttempts.WithLabelValues("sent").Inc()
			return nil
		} else {
			lastErr = err
			syncPublishAttempts.WithLabelValues("retry_error").Inc()
		}

		if attempt >= w.cfg.MaxAttempts {
			break
		}

		delay := w.retryBackoff(attempt)
		if delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("publish failed after %d attempts: %w", w.cfg.MaxAttempts, lastErr)
}

func (w *Worker) retryBackoff(attempt int) time.Duration {
	if w.cfg.RetryBaseDelay <= 0 {
		return 0
	}
	delay := w.cfg.RetryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

func (w *Worker) refreshBacklogMetrics() {
	stats, err := w.queue.Stats()
	if err != nil {
		w.logger.WithError(err).Warn("failed to collect sync backlog stats")
		return
	}

	syncPendingEvents.Set(float64(stats.PendingCount))
	if stats.PendingCount == 0 || stats.OldestPendingAt.IsZero() {
		syncOldestPendingAge.Set(0)
		return
	}
	age := time.Since(stats.OldestPendingAt).Seconds()
	if age < 0 {
		age = 0
	}
	syncOldestPendingAge.Set(age)
}

// publishToDLQ заворачивает исходное событие вместе с текстом ошибки,
// чтобы dead letter можно было разобрать без доступа к очереди кассы.
func (w *Worker) publishToDLQ(event domain.OutboxMessage, publishErr error) error {
	if w.dlqPublisher == nil {
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"event_id":       event.ID,
		"aggregate_type": event.AggregateType,
		"aggregate_id":   event.AggregateID,
		"event_type":     event.EventType,
		"payload":        json.RawMessage(event.Payload),
		"publish_error":  publishErr.Error(),
		"failed_at":      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal dlq payload: %w", err)
	}

	dlq := event
	dlq.Payload = payload
	if err := w.dlqPublisher.Publish(dlq); err != nil {
		return fmt.Errorf("publish to dlq: %w", err)
	}
	return nil
}
