package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// SyncPublisher публикует события из очереди синхронизации кассы в Kafka topic.
type SyncPublisher struct {
	producer *Producer
	topic    string
}

// NewSyncPublisher создаёт Kafka-паблишер для воркера синхронизации.
func NewSyncPublisher(producer *Producer, topic string) *SyncPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &SyncPublisher{
		producer: producer,
		topic:    topic,
	}
}

// Publish отправляет событие в topic в конверте с метаданными публикации.
func (p *SyncPublisher) Publish(event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka sync publisher is not initialized")
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}

	envelope := struct {
		ID            string          `json:"id"`
		AggregateType string          `json:"aggregate_type"`
		AggregateID   string          `json:"aggregate_id"`
		EventType     string          `json:"event_type"`
		Payload       json.RawMessage `json:"payload"`
		PublishedAt   time.Time       `json:"published_at"`
	}{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       json.RawMessage(event.Payload),
		PublishedAt:   time.Now().UTC(),
	}

	return p.producer.PublishEvent(p.topic, key, envelope)
}

var _ domain.OutboxPublisher = (*SyncPublisher)(nil)
