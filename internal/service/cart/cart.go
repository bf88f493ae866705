package cart

import (
	"sync"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// Cart держит собираемый заказ до checkout: позиции в порядке добавления
// и опциональную ссылку на покупателя.
//
// Все операции синхронные и защищены одним мьютексом (single-writer):
// каждая читает текущее состояние и атомарно заменяет его новым.
// Корзина никогда не трогает складские остатки каталога — снимок stock
// внутри позиции служит только потолком для количества.
type Cart struct {
	mu       sync.Mutex
	items    []domain.OrderItem
	customer *domain.Customer
}

// New возвращает пустую корзину.
func New() *Cart {
	return &Cart{}
}

// Add добавляет товар в корзину.
// Если позиция уже есть, количество растёт на 1 до потолка stock (на потолке — no-op).
// Товар с нулевым остатком не добавляется.
func (c *Cart) Add(product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != product.ID {
			continue
		}
		if c.items[i].Qty < product.Stock {
			c.items[i].Qty++
		}
		return
	}

	if product.Stock > 0 {
		c.items = append(c.items, domain.OrderItem{Product: product, Qty: 1})
	}
}

// UpdateQuantity выставляет количество позиции.
// qty <= 0 удаляет позицию; иначе значение тихо ограничивается снимком stock —
// доступность склада здесь подсказка для UX, а не жёсткая ошибка.
func (c *Cart) UpdateQuantity(productID string, qty int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		kept := c.items[:0]
		for _, it := range c.items {
			if it.ID != productID {
				kept = append(kept, it)
			}
		}
		c.items = kept
		return
	}

	for i := range c.items {
		if c.items[i].ID != productID {
			continue
		}
		if qty > c.items[i].Stock {
			qty = c.items[i].Stock
		}
		c.items[i].Qty = qty
		return
	}
}

// SetCustomer привязывает покупателя к текущему заказу (копией записи).
func (c *Cart) SetCustomer(customer *domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if customer == nil {
		c.customer = nil
		return
	}
	cp := *customer
	c.customer = &cp
}

// Customer возвращает копию привязанного покупателя или nil.
func (c *Cart) Customer() *domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.customer == nil {
		return nil
	}
	cp := *c.customer
	return &cp
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []domain.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.copyItemsLocked()
}

// IsEmpty сообщает, пуста ли корзина.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items) == 0
}

// Load заменяет содержимое корзины снимком заказа (используется при edit).
func (c *Cart) Load(items []domain.OrderItem, customer *domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]domain.OrderItem, len(items))
	copy(c.items, items)
	if customer == nil {
		c.customer = nil
	} else {
		cp := *customer
		c.customer = &cp
	}
}

// Clear опустошает корзину и отвязывает покупателя.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.customer = nil
}

// Totals пересчитывает итоги корзины по текущим позициям и покупателю.
func (c *Cart) Totals(taxRateBP int64) domain.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	exempt := c.customer != nil && c.customer.TaxExempt
	return domain.ComputeTotals(c.items, exempt, taxRateBP)
}

// Snapshot атомарно возвращает позиции и покупателя для checkout.
func (c *Cart) Snapshot() ([]domain.OrderItem, *domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.copyItemsLocked()
	if c.customer == nil {
		return items, nil
	}
	cp := *c.customer
	return items, &cp
}

func (c *Cart) copyItemsLocked() []domain.OrderItem {
	items := make([]domain.OrderItem, len(c.items))
	copy(items, c.items)
	return items
}
