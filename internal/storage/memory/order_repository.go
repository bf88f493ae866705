package memory

import (
	"sync"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
// История хранится отдельным списком идентификаторов, новые заказы — первыми:
// порядок "самые свежие сверху" является внешним контрактом истории продаж.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.CompletedOrder
	order []string
}

// NewOrderRepository возвращает in-memory репозиторий для локальной работы кассы и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.CompletedOrder),
	}
}

// Create сохраняет новый заказ в начало истории, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(order domain.CompletedOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderVersionConflict
	}
	// Сохраняем копию позиций, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = cloneOrder(order)
	r.order = append([]string{order.ID}, r.order...)
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(id string) (domain.CompletedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.CompletedOrder{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// List возвращает историю от новых к старым, ограничивая выборку limit (если >0).
func (r *orderRepositoryInMemory) List(limit int) ([]domain.CompletedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.CompletedOrder, 0, len(r.order))
	for _, id := range r.order {
		order, ok := r.items[id]
		if !ok {
			continue
		}
		result = append(result, cloneOrder(order))
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// Save перезаписывает заказ, проверяя версию (optimistic locking).
func (r *orderRepositoryInMemory) Save(order domain.CompletedOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if current.Version != order.Version {
		return domain.ErrOrderVersionConflict
	}
	// Инкрементируем версию перед сохранением.
	order.Version++
	r.items[order.ID] = cloneOrder(order)
	return nil
}

// Delete навсегда удаляет запись заказа из истории.
func (r *orderRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneOrder(order domain.CompletedOrder) domain.CompletedOrder {
	cp := order
	cp.Items = make([]domain.OrderItem, len(order.Items))
	copy(cp.Items, order.Items)
	if order.Customer != nil {
		customer := *order.Customer
		cp.Customer = &customer
	}
	return cp
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
