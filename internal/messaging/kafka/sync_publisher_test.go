package kafka

import (
	"testing"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

func TestSyncPublisher_DefaultTopic(t *testing.T) {
	publisher := NewSyncPublisher(nil, "")
	if publisher.topic != TopicOrderEvents {
		t.Fatalf("expected default topic %s, got %s", TopicOrderEvents, publisher.topic)
	}

	publisher = NewSyncPublisher(nil, "custom.events")
	if publisher.topic != "custom.events" {
		t.Fatalf("expected custom topic, got %s", publisher.topic)
	}
}

func TestSyncPublisher_NotInitialized(t *testing.T) {
	publisher := NewSyncPublisher(nil, "")
	err := publisher.Publish(domain.OutboxMessage{ID: "m1", EventType: domain.EventOrderCompleted})
	if err == nil {
		t.Fatal("expected error for uninitialized publisher")
	}
}
