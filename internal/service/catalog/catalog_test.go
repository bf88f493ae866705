package catalog

import (
	"testing"

	"github.com/allyelvis/pos-kiosk/internal/domain"
	"github.com/allyelvis/pos-kiosk/internal/storage/memory"
)

func newService(t *testing.T) *Service {
	t.Helper()

	svc := New(
		memory.NewProductRepository(),
		memory.NewCategoryRepository(),
		memory.NewCustomerRepository(),
		nil,
	)
	if err := svc.SaveCategory(domain.Category{ID: "beverages", Name: "Beverages"}); err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	if err := svc.SaveCategory(domain.Category{ID: "electronics", Name: "Electronics"}); err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return svc
}

func TestCatalog_SaveProduct(t *testing.T) {
	svc := newService(t)

	product := domain.Product{ID: "p1", Name: "Espresso", CategoryID: "beverages", PriceMinor: 350, Stock: 10}
	if err := svc.SaveProduct(product); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, err := svc.Product("p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "Espresso" || stored.Stock != 10 {
		t.Fatalf("unexpected product: %+v", stored)
	}
}

func TestCatalog_SaveProductValidation(t *testing.T) {
	svc := newService(t)

	if err := svc.SaveProduct(domain.Product{Name: "No ID"}); err != domain.ErrProductIDRequired {
		t.Fatalf("expected ErrProductIDRequired, got %v", err)
	}
	if err := svc.SaveProduct(domain.Product{ID: "p1", Name: "Bad", PriceMinor: -1}); err != domain.ErrItemPriceInvalid {
		t.Fatalf("expected ErrItemPriceInvalid, got %v", err)
	}
	ghost := domain.Product{ID: "p1", Name: "Ghost", CategoryID: "missing", PriceMinor: 100}
	if err := svc.SaveProduct(ghost); err != domain.ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCatalog_ProductsFilterByCategory(t *testing.T) {
	svc := newService(t)
	seed := []domain.Product{
		{ID: "p1", Name: "Espresso", CategoryID: "beverages", PriceMinor: 350, Stock: 10},
		{ID: "p2", Name: "Latte", CategoryID: "beverages", PriceMinor: 450, Stock: 10},
		{ID: "p3", Name: "Headphones", CategoryID: "electronics", PriceMinor: 7999, Stock: 5},
	}
	for _, p := range seed {
		if err := svc.SaveProduct(p); err != nil {
			t.Fatalf("save %s failed: %v", p.ID, err)
		}
	}

	all, err := svc.Products(domain.CategoryAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full catalog, got %d", len(all))
	}

	beverages, err := svc.Products("beverages")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(beverages) != 2 || beverages[0].ID != "p1" || beverages[1].ID != "p2" {
		t.Fatalf("unexpected filter result: %+v", beverages)
	}
}

func TestCatalog_DeleteCategoryRefusedWhileInUse(t *testing.T) {
	svc := newService(t)
	product := domain.Product{ID: "p1", Name: "Espresso", CategoryID: "beverages", PriceMinor: 350, Stock: 10}
	if err := svc.SaveProduct(product); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := svc.DeleteCategory("beverages"); err != domain.ErrCategoryInUse {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	// Категория переживает отказ.
	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected both categories, got %d", len(categories))
	}

	// После удаления последнего товара категория удаляется.
	if err := svc.DeleteProduct("p1"); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.DeleteCategory("beverages"); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
}

func TestCatalog_DeleteUnknownCategory(t *testing.T) {
	svc := newService(t)

	if err := svc.DeleteCategory("missing"); err != domain.ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCatalog_Customers(t *testing.T) {
	svc := newService(t)

	if err := svc.SaveCustomer(domain.Customer{ID: "c1", Name: "Alice Johnson", Email: "alice@example.com"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := svc.SaveCustomer(domain.Customer{Name: "No ID"}); err != domain.ErrCustomerInvalid {
		t.Fatalf("expected ErrCustomerInvalid, got %v", err)
	}

	customer, err := svc.Customer("c1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if customer.Email != "alice@example.com" {
		t.Fatalf("unexpected customer: %+v", customer)
	}

	customers, err := svc.Customers()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(customers))
	}
}
