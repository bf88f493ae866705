package memory

import (
	"sync"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// customerRepositoryInMemory — in-memory реализация справочника покупателей.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
	order []string
}

// NewCustomerRepository возвращает in-memory справочник покупателей.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// Upsert создаёт покупателя или перезаписывает существующего.
func (r *customerRepositoryInMemory) Upsert(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[customer.ID]; !exists {
		r.order = append(r.order, customer.ID)
	}
	r.items[customer.ID] = customer
	return nil
}

// Get возвращает покупателя или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Get(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// List возвращает покупателей в порядке добавления.
func (r *customerRepositoryInMemory) List() ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		if customer, ok := r.items[id]; ok {
			result = append(result, customer)
		}
	}
	return result, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
