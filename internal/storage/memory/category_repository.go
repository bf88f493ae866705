package memory

import (
	"sync"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// categoryRepositoryInMemory — in-memory реализация справочника категорий.
type categoryRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Category
	order []string
}

// NewCategoryRepository возвращает in-memory справочник категорий.
func NewCategoryRepository() domain.CategoryRepository {
	return &categoryRepositoryInMemory{
		items: make(map[string]domain.Category),
	}
}

// Upsert создаёт категорию или перезаписывает существующую.
func (r *categoryRepositoryInMemory) Upsert(category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[category.ID]; !exists {
		r.order = append(r.order, category.ID)
	}
	r.items[category.ID] = category
	return nil
}

// Get возвращает категорию или ErrCategoryNotFound.
func (r *categoryRepositoryInMemory) Get(id string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.items[id]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return category, nil
}

// List возвращает категории в порядке добавления.
func (r *categoryRepositoryInMemory) List() ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Category, 0, len(r.order))
	for _, id := range r.order {
		if category, ok := r.items[id]; ok {
			result = append(result, category)
		}
	}
	return result, nil
}

// Delete удаляет категорию; отсутствующий ID — no-op.
func (r *categoryRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ domain.CategoryRepository = (*categoryRepositoryInMemory)(nil)
