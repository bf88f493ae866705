package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/allyelvis/pos-kiosk/internal/domain"
	"github.com/allyelvis/pos-kiosk/internal/storage/memory"
)

type fakePublisher struct {
	published []domain.OutboxMessage
	failTimes int
	calls     int
}

func (p *fakePublisher) Publish(event domain.OutboxMessage) error {
	p.calls++
	if p.calls <= p.failTimes {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func enqueue(t *testing.T, queue domain.OutboxRepository, eventType string) domain.OutboxMessage {
	t.Helper()
	msg, err := queue.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "order-1",
		EventType:     eventType,
		Payload:       []byte(`{"order_id":"order-1"}`),
	})
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	return msg
}

func TestWorker_PublishesPending(t *testing.T) {
	queue := memory.NewOutboxRepository()
	publisher := &fakePublisher{}
	enqueue(t, queue, "OrderCompleted")
	enqueue(t, queue, "OrderCanceled")

	worker := NewWorker(queue, publisher, nil, Config{RetryBaseDelay: 0}, nil)
	worker.ProcessOnce(context.Background())

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	if publisher.published[0].EventType != "OrderCompleted" {
		t.Fatalf("unexpected first event: %s", publisher.published[0].EventType)
	}

	pending, err := queue.PullPending(10)
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected drained queue, got %d pending", len(pending))
	}
}

func TestWorker_RetriesTransientFailure(t *testing.T) {
	queue := memory.NewOutboxRepository()
	publisher := &fakePublisher{failTimes: 2}
	enqueue(t, queue, "OrderCompleted")

	worker := NewWorker(queue, publisher, nil, Config{MaxAttempts: 3, RetryBaseDelay: 0}, nil)
	worker.ProcessOnce(context.Background())

	if len(publisher.published) != 1 {
		t.Fatalf("expected publish to succeed on retry, got %d", len(publisher.published))
	}
	if publisher.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", publisher.calls)
	}
}

func TestWorker_ExhaustedRetriesGoToDLQ(t *testing.T) {
	queue := memory.NewOutboxRepository()
	publisher := &fakePublisher{failTimes: 100}
	dlq := &fakePublisher{}
	msg := enqueue(t, queue, "OrderSplit")

	worker := NewWorker(queue, publisher, dlq, Config{MaxAttempts: 2, RetryBaseDelay: 0}, nil)
	worker.ProcessOnce(context.Background())

	if len(dlq.published) != 1 {
		t.Fatalf("expected 1 DLQ event, got %d", len(dlq.published))
	}

	var envelope map[string]any
	if err := json.Unmarshal(dlq.published[0].Payload, &envelope); err != nil {
		t.Fatalf("unmarshal dlq payload failed: %v", err)
	}
	if envelope["event_id"] != msg.ID || envelope["publish_error"] == "" {
		t.Fatalf("unexpected dlq envelope: %+v", envelope)
	}

	// Неопубликованное событие помечено failed и не зацикливается.
	pending, err := queue.PullPending(10)
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected failed event removed from backlog, got %d", len(pending))
	}
}

func TestWorker_CanceledContext(t *testing.T) {
	queue := memory.NewOutboxRepository()
	publisher := &fakePublisher{}
	enqueue(t, queue, "OrderCompleted")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker := NewWorker(queue, publisher, nil, Config{}, nil)
	worker.ProcessOnce(ctx)

	if publisher.calls != 0 {
		t.Fatalf("expected no publish after cancel, got %d calls", publisher.calls)
	}
}

func TestWorker_Backoff(t *testing.T) {
	worker := NewWorker(memory.NewOutboxRepository(), &fakePublisher{}, nil, Config{RetryBaseDelay: 100}, nil)

	if got := worker.retryBackoff(1); got != 100 {
		t.Fatalf("expected base delay, got %d", got)
	}
	if got := worker.retryBackoff(3); got != 400 {
		t.Fatalf("expected exponential delay, got %d", got)
	}
}
