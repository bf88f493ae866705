package memory

import (
	"sync"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// productRepositoryInMemory — in-memory реализация каталога товаров.
// Порядок добавления сохраняется: каталог отдаётся стабильно для витрины.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
	order []string
}

// NewProductRepository возвращает in-memory каталог товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Upsert создаёт товар или перезаписывает существующий с тем же ID.
func (r *productRepositoryInMemory) Upsert(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.items[product.ID] = product
	return nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// List возвращает каталог в порядке добавления.
func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// Delete удаляет товар; отсутствующий ID — no-op.
func (r *productRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// AdjustStock изменяет остаток товара на delta и возвращает обновлённую запись.
// Остаток не опускается ниже нуля.
func (r *productRepositoryInMemory) AdjustStock(id string, delta int32) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	product.Stock += delta
	if product.Stock < 0 {
		product.Stock = 0
	}
	r.items[id] = product
	return product, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
