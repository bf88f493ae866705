package postgres

import (
	"testing"
	"time"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

func integrationOrder(id string) domain.CompletedOrder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	items := []domain.OrderItem{
		{Product: domain.Product{ID: "p1", Name: "Espresso", SKU: "BEV-001", PriceMinor: 350, Stock: 100}, Qty: 2},
		{Product: domain.Product{ID: "p2", Name: "Headphones", SKU: "ELC-001", PriceMinor: 7999, Stock: 5}, Qty: 1},
	}
	return domain.CompletedOrder{
		ID:            id,
		Items:         items,
		Customer:      &domain.Customer{ID: "c1", Name: "Alice Johnson"},
		Totals:        domain.ComputeTotals(items, false, domain.DefaultTaxRateBP),
		PaymentMethod: "card",
		Status:        domain.OrderStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderRepository_Integration_Lifecycle(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	order := integrationOrder("order-1")
	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(integrationOrder("order-2")); err != nil {
		t.Fatalf("create second: %v", err)
	}

	stored, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].ID != "p1" || stored.Items[1].Qty != 1 {
		t.Fatalf("unexpected items: %+v", stored.Items)
	}
	if stored.Customer == nil || stored.Customer.ID != "c1" {
		t.Fatalf("unexpected customer: %+v", stored.Customer)
	}
	if stored.TotalMinor != order.TotalMinor {
		t.Fatalf("unexpected total: %d", stored.TotalMinor)
	}

	orders, err := repo.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "order-2" {
		t.Fatalf("expected newest-first history, got %+v", orders)
	}

	stored.Status = domain.OrderStatusCanceled
	stored.UpdatedAt = time.Now().UTC()
	if err := repo.Save(stored); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if updated.Status != domain.OrderStatusCanceled || updated.Version != stored.Version+1 {
		t.Fatalf("unexpected saved order: status=%s version=%d", updated.Status, updated.Version)
	}

	stale := stored
	stale.Version = 42
	if err := repo.Save(stale); !domain.IsVersionConflict(err) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	if err := repo.Delete("order-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get("order-1"); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := repo.Delete("order-1"); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound on repeat delete, got %v", err)
	}
}

func TestOrderRepository_Integration_SaveRewritesItems(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	order := integrationOrder("order-1")
	if err := repo.Create(order); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// Имитация split: в исходном заказе остаётся одна позиция.
	stored.Items = stored.Items[:1]
	stored.Totals = domain.ComputeTotals(stored.Items, false, domain.DefaultTaxRateBP)
	stored.UpdatedAt = time.Now().UTC()
	if err := repo.Save(stored); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].ID != "p1" {
		t.Fatalf("expected rewritten items, got %+v", updated.Items)
	}
}
