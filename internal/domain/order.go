package domain

import "time"

// OrderStatus описывает жизненный цикл завершённого заказа.
type OrderStatus string

const (
	// OrderStatusCompleted — заказ оплачен, товар списан со склада.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCanceled — заказ аннулирован, списание склада возвращено.
	// Статус терминальный: из него возможно только удаление записи.
	OrderStatusCanceled OrderStatus = "canceled"
)

// OrderItem — снимок товара плюс количество.
// Пока позиция лежит в корзине, Qty ограничен остатком на момент выбора;
// внутри завершённого заказа количество историческое и от живого склада не зависит.
type OrderItem struct {
	Product
	Qty int32 `json:"quantity"`
}

// LineTotalMinor возвращает стоимость позиции (цена × количество).
func (i OrderItem) LineTotalMinor() int64 {
	return int64(i.Qty) * i.PriceMinor
}

// CompletedOrder — зафиксированный заказ в истории продаж.
type CompletedOrder struct {
	ID string `json:"id"`
	// Items хранит позиции в порядке добавления; порядок значим для чека.
	Items    []OrderItem `json:"items"`
	Customer *Customer   `json:"customer,omitempty"`
	Totals
	PaymentMethod string      `json:"payment_method"`
	Status        OrderStatus `json:"status"`
	Version       int64       `json:"version"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TaxExempt сообщает, освобождён ли заказ от налога по признаку покупателя.
func (o *CompletedOrder) TaxExempt() bool {
	return o.Customer != nil && o.Customer.TaxExempt
}

// ValidateInvariants проверяет инварианты свежесозданного заказа и возвращает список замечаний.
// Применяется при checkout и split; заказ, полностью разобранный split-ом,
// намеренно остаётся с пустым списком позиций и сюда не попадает.
func (o *CompletedOrder) ValidateInvariants() []error {
	var errs []error

	if o.ID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.PaymentMethod == "" {
		errs = append(errs, ErrPaymentMethodRequired)
	}

	// Сверяем сумму заказа с суммой позиций: qty * price.
	var calc int64
	for _, item := range o.Items {
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += item.LineTotalMinor()
	}
	if calc != o.SubtotalMinor {
		errs = append(errs, ErrAmountMismatch)
	}
	if o.TotalMinor != o.SubtotalMinor+o.TaxMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// SplitSelection задаёт, сколько единиц какой позиции переносится в новый заказ при split.
type SplitSelection struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"quantity"`
}
