package memory_test

import (
	"testing"

	"github.com/allyelvis/pos-kiosk/internal/domain"
	"github.com/allyelvis/pos-kiosk/internal/storage/memory"
)

func newProduct(id string, stock int32) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       "product-" + id,
		CategoryID: "beverages",
		PriceMinor: 350,
		SKU:        "SKU-" + id,
		Stock:      stock,
	}
}

func TestProductRepository_UpsertGet(t *testing.T) {
	repo := memory.NewProductRepository()

	if err := repo.Upsert(newProduct("p1", 10)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	product, err := repo.Get("p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Stock != 10 {
		t.Fatalf("expected stock 10, got %d", product.Stock)
	}

	// Upsert с тем же ID перезаписывает запись, не дублируя её в каталоге.
	updated := newProduct("p1", 25)
	if err := repo.Upsert(updated); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	products, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Stock != 25 {
		t.Fatalf("unexpected catalog state: %+v", products)
	}
}

func TestProductRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := memory.NewProductRepository()
	for _, id := range []string{"p3", "p1", "p2"} {
		if err := repo.Upsert(newProduct(id, 5)); err != nil {
			t.Fatalf("upsert %s failed: %v", id, err)
		}
	}

	products, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if products[0].ID != "p3" || products[1].ID != "p1" || products[2].ID != "p2" {
		t.Fatalf("unexpected order: %+v", products)
	}
}

func TestProductRepository_AdjustStock(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Upsert(newProduct("p1", 10)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	product, err := repo.AdjustStock("p1", -4)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if product.Stock != 6 {
		t.Fatalf("expected stock 6, got %d", product.Stock)
	}

	product, err = repo.AdjustStock("p1", 4)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if product.Stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", product.Stock)
	}

	if _, err := repo.AdjustStock("missing", 1); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_Delete(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Upsert(newProduct("p1", 10)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get("p1"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Повторное удаление — no-op.
	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}
