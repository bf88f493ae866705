package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegisterMetrics(t *testing.T) {
	m := NewRegisterMetrics()

	if m == nil {
		t.Fatal("NewRegisterMetrics should not return nil")
	}

	if m.checkouts == nil {
		t.Error("checkouts counter should not be nil")
	}
	if m.ordersCanceled == nil {
		t.Error("ordersCanceled counter should not be nil")
	}
	if m.ordersDeleted == nil {
		t.Error("ordersDeleted counter should not be nil")
	}
	if m.ordersSplit == nil {
		t.Error("ordersSplit counter should not be nil")
	}
	if m.ordersEdited == nil {
		t.Error("ordersEdited counter should not be nil")
	}
	if m.revenueMinor == nil {
		t.Error("revenueMinor counter should not be nil")
	}
	if m.checkoutDuration == nil {
		t.Error("checkoutDuration histogram should not be nil")
	}
	if m.orderItems == nil {
		t.Error("orderItems histogram should not be nil")
	}
	if m.outboxEvents == nil {
		t.Error("outboxEvents counter should not be nil")
	}
}

func TestNewRegisterMetrics_Idempotent(t *testing.T) {
	// Повторная инициализация не должна паниковать на already-registered.
	first := NewRegisterMetrics()
	second := NewRegisterMetrics()

	if first == nil || second == nil {
		t.Fatal("both instances must be created")
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordCheckout(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newRegisterMetricsWithRegisterer(registry)

	m.RecordCheckout(9395, 2)
	m.RecordCheckout(700, 1)
	m.RecordCheckoutDuration(5 * time.Millisecond)

	if got := counterValue(t, m.checkouts); got != 2 {
		t.Fatalf("expected 2 checkouts, got %v", got)
	}
	if got := counterValue(t, m.revenueMinor); got != 10095 {
		t.Fatalf("expected revenue 10095, got %v", got)
	}
}

func TestRecordLifecycleCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newRegisterMetricsWithRegisterer(registry)

	m.RecordOrderCanceled()
	m.RecordOrderCanceled()
	m.RecordOrderDeleted()
	m.RecordOrderSplit()
	m.RecordOrderEdited()
	m.RecordOutboxEvent()

	if got := counterValue(t, m.ordersCanceled); got != 2 {
		t.Fatalf("expected 2 cancels, got %v", got)
	}
	if got := counterValue(t, m.ordersDeleted); got != 1 {
		t.Fatalf("expected 1 delete, got %v", got)
	}
	if got := counterValue(t, m.ordersSplit); got != 1 {
		t.Fatalf("expected 1 split, got %v", got)
	}
	if got := counterValue(t, m.ordersEdited); got != 1 {
		t.Fatalf("expected 1 edit, got %v", got)
	}
	if got := counterValue(t, m.outboxEvents); got != 1 {
		t.Fatalf("expected 1 outbox event, got %v", got)
	}
}
