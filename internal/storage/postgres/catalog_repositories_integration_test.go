package postgres

import (
	"testing"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

func TestProductRepository_Integration_AdjustStock(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	product := domain.Product{ID: "p1", Name: "Espresso", CategoryID: "beverages", PriceMinor: 350, SKU: "BEV-001", Stock: 10}
	if err := repo.Upsert(product); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	adjusted, err := repo.AdjustStock("p1", -4)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if adjusted.Stock != 6 {
		t.Fatalf("expected stock 6, got %d", adjusted.Stock)
	}

	// Остаток не уходит ниже нуля.
	adjusted, err = repo.AdjustStock("p1", -100)
	if err != nil {
		t.Fatalf("adjust below zero: %v", err)
	}
	if adjusted.Stock != 0 {
		t.Fatalf("expected floor at 0, got %d", adjusted.Stock)
	}

	if _, err := repo.AdjustStock("missing", 1); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestEventRepository_Integration_Queue(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewEventRepository(store)

	msg, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "order-1",
		EventType:     "OrderCompleted",
		Payload:       []byte(`{"order_id":"order-1"}`),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("expected generated event id")
	}

	pending, err := repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "OrderCompleted" {
		t.Fatalf("unexpected pending: %+v", pending)
	}

	if err := repo.MarkSent(msg.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 0 {
		t.Fatalf("expected drained queue, got %d", stats.PendingCount)
	}

	if err := repo.MarkSent("missing"); err != domain.ErrOutboxPublish {
		t.Fatalf("expected ErrOutboxPublish, got %v", err)
	}
}

func TestMigrator_Integration_UpIsIdempotent(t *testing.T) {
	store := openStoreForIntegrationTest(t)

	if err := store.MigrateUp(); err != nil {
		t.Fatalf("repeated migrate up: %v", err)
	}
	version, dirty, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if dirty || version == 0 {
		t.Fatalf("unexpected schema state: version=%d dirty=%v", version, dirty)
	}
}
