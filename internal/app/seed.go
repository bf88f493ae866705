package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// demoCategories и demoProducts — каталог демо-магазина.
var demoCategories = []domain.Category{
	{ID: "beverages", Name: "Beverages"},
	{ID: "snacks", Name: "Snacks"},
	{ID: "electronics", Name: "Electronics"},
	{ID: "apparel", Name: "Apparel"},
}

var demoProducts = []domain.Product{
	{ID: "p1", Name: "Espresso", CategoryID: "beverages", PriceMinor: 350, SKU: "BEV-001", Stock: 100, ImageURL: "https://picsum.photos/id/225/200"},
	{ID: "p2", Name: "Latte", CategoryID: "beverages", PriceMinor: 450, SKU: "BEV-002", Stock: 80, ImageURL: "https://picsum.photos/id/305/200"},
	{ID: "p3", Name: "Potato Chips", CategoryID: "snacks", PriceMinor: 225, SKU: "SNK-001", Stock: 150, ImageURL: "https://picsum.photos/id/102/200"},
	{ID: "p4", Name: "Chocolate Bar", CategoryID: "snacks", PriceMinor: 175, SKU: "SNK-002", Stock: 200, ImageURL: "https://picsum.photos/id/431/200"},
	{ID: "p5", Name: "Headphones", CategoryID: "electronics", PriceMinor: 7999, SKU: "ELE-001", Stock: 30, ImageURL: "https://picsum.photos/id/119/200"},
	{ID: "p6", Name: "USB-C Cable", CategoryID: "electronics", PriceMinor: 1200, SKU: "ELE-002", Stock: 75, ImageURL: "https://picsum.photos/id/512/200"},
	{ID: "p7", Name: "T-Shirt", CategoryID: "apparel", PriceMinor: 2500, SKU: "APP-001", Stock: 50, ImageURL: "https://picsum.photos/id/1080/200"},
	{ID: "p8", Name: "Beanie", CategoryID: "apparel", PriceMinor: 1850, SKU: "APP-002", Stock: 40, ImageURL: "https://picsum.photos/id/1078/200"},
	{ID: "p9", Name: "Sparkling Water", CategoryID: "beverages", PriceMinor: 200, SKU: "BEV-003", Stock: 120, ImageURL: "https://picsum.photos/id/1015/200"},
	{ID: "p10", Name: "Granola Bar", CategoryID: "snacks", PriceMinor: 150, SKU: "SNK-003", Stock: 300, ImageURL: "https://picsum.photos/id/292/200"},
	{ID: "p11", Name: "Mouse", CategoryID: "electronics", PriceMinor: 4500, SKU: "ELE-003", Stock: 25, ImageURL: "https://picsum.photos/id/0/200"},
	{ID: "p12", Name: "Hoodie", CategoryID: "apparel", PriceMinor: 5500, SKU: "APP-003", Stock: 0, ImageURL: "https://picsum.photos/id/1069/200"},
}

var demoCustomers = []domain.Customer{
	{ID: "c1", Name: "Alice Johnson", Email: "alice@example.com", LoyaltyPoints: 1250},
	{ID: "c2", Name: "Bob Williams", Email: "bob@example.com", LoyaltyPoints: 780},
	{ID: "c3", Name: "Charlie Brown", Email: "charlie@example.com", LoyaltyPoints: 2400},
	{ID: "c4", Name: "Diana Prince", Email: "diana@example.com", LoyaltyPoints: 500},
}

// seedDemoData наполняет пустой каталог демо-данными.
// Непустой каталог не трогается, чтобы не перетирать живые данные при рестарте.
func seedDemoData(deps *Dependencies, logger *log.Entry) error {
	products, err := deps.Products.List()
	if err != nil {
		return err
	}
	if len(products) > 0 {
		logger.Debug("catalog is not empty, skipping demo seed")
		return nil
	}

	for _, category := range demoCategories {
		if err := deps.Categories.Upsert(category); err != nil {
			return err
		}
	}
	for _, product := range demoProducts {
		if err := deps.Products.Upsert(product); err != nil {
			return err
		}
	}
	for _, customer := range demoCustomers {
		if err := deps.Customers.Upsert(customer); err != nil {
			return err
		}
	}

	logger.WithFields(log.Fields{
		"categories": len(demoCategories),
		"products":   len(demoProducts),
		"customers":  len(demoCustomers),
	}).Info("demo catalog seeded")
	return nil
}
