package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product id is required")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательного остатка на складе.
	ErrStockNegative = errors.New("product stock must be non-negative")
	// Ошибка отсутствующего идентификатора заказа.
	ErrOrderIDRequired = errors.New("order id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия итогов заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order totals do not match items sum")
	// Ошибка отсутствующего способа оплаты при checkout.
	ErrPaymentMethodRequired = errors.New("payment method is required")
	// ErrCartEmpty возвращается при попытке checkout пустой корзины.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrNothingToSplit возвращается, когда выборка для split пуста.
	ErrNothingToSplit = errors.New("split selection is empty")
	// ErrCategoryInvalid — у категории отсутствует идентификатор или название.
	ErrCategoryInvalid = errors.New("category id and name are required")
	// ErrCustomerInvalid — у покупателя отсутствует идентификатор или имя.
	ErrCustomerInvalid = errors.New("customer id and name are required")
	// ErrCategoryInUse возвращается при попытке удалить категорию, на которую ссылаются товары.
	// Единственный случай, когда операция отказывает вместо тихого no-op.
	ErrCategoryInUse = errors.New("category is assigned to one or more products")
	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound возвращается, если категория не найдена.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCustomerNotFound возвращается, если покупатель не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrPaymentDeclined — платёж отклонён терминалом (бизнес-ошибка).
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}

// IsNotFound проверяет, относится ли ошибка к отсутствующей записи (stale reference).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCustomerNotFound)
}
