package domain

// ProductRepository описывает требования к хранилищу каталога товаров.
type ProductRepository interface {
	// Upsert создаёт товар или перезаписывает существующий с тем же ID.
	Upsert(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// List возвращает каталог в стабильном порядке добавления.
	List() ([]Product, error)
	// Delete удаляет товар; отсутствующий ID — no-op.
	Delete(id string) error
	// AdjustStock изменяет остаток на delta (отрицательная — списание)
	// и возвращает обновлённый товар.
	AdjustStock(id string, delta int32) (Product, error)
}

// CategoryRepository описывает хранилище категорий каталога.
type CategoryRepository interface {
	Upsert(category Category) error
	Get(id string) (Category, error)
	List() ([]Category, error)
	Delete(id string) error
}

// CustomerRepository описывает хранилище покупателей.
// Движок заказов только читает записи, никогда их не мутирует.
type CustomerRepository interface {
	Upsert(customer Customer) error
	Get(id string) (Customer, error)
	List() ([]Customer, error)
}

// OrderRepository описывает требования к хранилищу завершённых заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ в начало истории (новые — первыми).
	Create(order CompletedOrder) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (CompletedOrder, error)
	// List возвращает историю заказов от новых к старым; limit > 0 ограничивает выборку.
	List(limit int) ([]CompletedOrder, error)
	// Save применяет обновления к заказу с учётом optimistic locking.
	Save(order CompletedOrder) error
	// Delete навсегда удаляет запись; склад при этом не трогается.
	Delete(id string) error
}
