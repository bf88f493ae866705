package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/domain"
	"github.com/allyelvis/pos-kiosk/internal/storage/memory"
	"github.com/allyelvis/pos-kiosk/internal/storage/postgres"
)

// Dependencies содержит хранилища кассы.
type Dependencies struct {
	Products   domain.ProductRepository
	Categories domain.CategoryRepository
	Customers  domain.CustomerRepository
	Orders     domain.OrderRepository
	Events     domain.OutboxRepository

	// Store не nil только для PostgreSQL-хранилища.
	Store *postgres.Store
}

// newDependencies выбирает tier хранения: PostgreSQL при заданном DSN,
// иначе in-memory. Демо-касса по умолчанию работает без внешней БД.
func newDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if cfg.PostgresDSN == "" {
		logger.Info("using in-memory storage")
		return &Dependencies{
			Products:   memory.NewProductRepository(),
			Categories: memory.NewCategoryRepository(),
			Customers:  memory.NewCustomerRepository(),
			Orders:     memory.NewOrderRepository(),
			Events:     memory.NewOutboxRepository(),
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := store.MigrateUp(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("using postgres storage")

	return &Dependencies{
		Products:   postgres.NewProductRepository(store),
		Categories: postgres.NewCategoryRepository(store),
		Customers:  postgres.NewCustomerRepository(store),
		Orders:     postgres.NewOrderRepository(store),
		Events:     postgres.NewEventRepository(store),
		Store:      store,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.Store != nil {
		return d.Store.Close()
	}
	return nil
}
