package app

import (
	"context"
	"testing"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

func newMemoryDeps(t *testing.T) *Dependencies {
	t.Helper()

	deps, err := newDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	return deps
}

func TestSeedDemoData(t *testing.T) {
	deps := newMemoryDeps(t)

	if err := seedDemoData(deps, testLogger()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	products, err := deps.Products.List()
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != len(demoProducts) {
		t.Fatalf("expected %d products, got %d", len(demoProducts), len(products))
	}
	// Каталог сохраняет порядок демо-набора.
	if products[0].ID != "p1" || products[len(products)-1].ID != "p12" {
		t.Fatalf("unexpected catalog order: first=%s last=%s", products[0].ID, products[len(products)-1].ID)
	}

	categories, err := deps.Categories.List()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != len(demoCategories) {
		t.Fatalf("expected %d categories, got %d", len(demoCategories), len(categories))
	}

	customers, err := deps.Customers.List()
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != len(demoCustomers) {
		t.Fatalf("expected %d customers, got %d", len(demoCustomers), len(customers))
	}
}

func TestSeedDemoData_SkipsNonEmptyCatalog(t *testing.T) {
	deps := newMemoryDeps(t)

	custom := domain.Product{ID: "custom", Name: "Custom", PriceMinor: 100, Stock: 1}
	if err := deps.Products.Upsert(custom); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := seedDemoData(deps, testLogger()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	products, err := deps.Products.List()
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "custom" {
		t.Fatalf("seed must not touch non-empty catalog: %+v", products)
	}
}
