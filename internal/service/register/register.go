package register

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/domain"
	"github.com/allyelvis/pos-kiosk/internal/metrics"
	"github.com/allyelvis/pos-kiosk/internal/service/cart"
)

// Register управляет жизненным циклом завершённых заказов: checkout,
// аннулирование, удаление, правка, перенос покупателя и split.
//
// Все мутации сериализуются одним мьютексом (single-writer), поэтому
// инвариант "ровно одна корректировка склада на checkout/cancel"
// сохраняется даже при конкурентных вызовах.
type Register struct {
	mu sync.Mutex

	cart      *cart.Cart
	orders    domain.OrderRepository
	products  domain.ProductRepository
	customers domain.CustomerRepository
	terminal  domain.PaymentTerminal
	outbox    domain.OutboxRepository
	taxRateBP int64
	logger    *log.Entry
	metrics   *metrics.RegisterMetrics
}

// Stats — сводка по истории продаж для дашборда.
type Stats struct {
	CompletedOrders int   `json:"completed_orders"`
	CanceledOrders  int   `json:"canceled_orders"`
	GrossSalesMinor int64 `json:"gross_sales_minor"`
	ItemsSold       int64 `json:"items_sold"`
}

// New создаёт рабочий экземпляр кассы.
func New(
	currentCart *cart.Cart,
	orders domain.OrderRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	terminal domain.PaymentTerminal,
	outbox domain.OutboxRepository,
	taxRateBP int64,
	logger *log.Entry,
) *Register {
	r := newRegister(currentCart, orders, products, customers, terminal, outbox, taxRateBP, logger)
	r.metrics = metrics.NewRegisterMetrics()
	return r
}

// NewWithoutMetrics создаёт кассу без метрик (для тестов).
func NewWithoutMetrics(
	currentCart *cart.Cart,
	orders domain.OrderRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	terminal domain.PaymentTerminal,
	outbox domain.OutboxRepository,
	taxRateBP int64,
	logger *log.Entry,
) *Register {
	return newRegister(currentCart, orders, products, customers, terminal, outbox, taxRateBP, logger)
}

func newRegister(
	currentCart *cart.Cart,
	orders domain.OrderRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	terminal domain.PaymentTerminal,
	outbox domain.OutboxRepository,
	taxRateBP int64,
	logger *log.Entry,
) *Register {
	if logger == nil {
		logger = log.New().WithField("component", "register")
	}
	if taxRateBP < 0 {
		taxRateBP = domain.DefaultTaxRateBP
	}
	return &Register{
		cart:      currentCart,
		orders:    orders,
		products:  products,
		customers: customers,
		terminal:  terminal,
		outbox:    outbox,
		taxRateBP: taxRateBP,
		logger:    logger,
	}
}

// Cart возвращает корзину текущего заказа.
func (r *Register) Cart() *cart.Cart {
	return r.cart
}

// TaxRateBP возвращает сконфигурированную ставку налога в базисных пунктах.
func (r *Register) TaxRateBP() int64 {
	return r.taxRateBP
}

// Checkout фиксирует текущую корзину в новый завершённый заказ.
// Требует непустую корзину; генерирует UUID заказа, замораживает позиции
// и покупателя, пересчитывает итоги, авторизует оплату, списывает склад
// и очищает корзину. Новый заказ встаёт в начало истории.
func (r *Register) Checkout(paymentMethod string) (domain.CompletedOrder, error) {
	start := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.RecordCheckoutDuration(time.Since(start))
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	if paymentMethod == "" {
		return domain.CompletedOrder{}, domain.ErrPaymentMethodRequired
	}

	items, customer := r.cart.Snapshot()
	if len(items) == 0 {
		return domain.CompletedOrder{}, domain.ErrCartEmpty
	}

	now := time.Now().UTC()
	exempt := customer != nil && customer.TaxExempt
	order := domain.CompletedOrder{
		ID:            uuid.NewString(),
		Items:         items,
		Customer:      customer,
		Totals:        domain.ComputeTotals(items, exempt, r.taxRateBP),
		PaymentMethod: paymentMethod,
		Status:        domain.OrderStatusCompleted,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		// Корзина уже отфильтровала некорректные позиции, сюда попадать не должны.
		r.logger.WithField("order_id", order.ID).Warnf("checkout invariants violated: %v", errs)
	}

	status, err := r.terminal.Authorize(order.ID, paymentMethod, order.TotalMinor)
	if err != nil {
		r.logger.WithError(err).WithField("order_id", order.ID).Warn("payment authorization failed")
		return domain.CompletedOrder{}, err
	}
	if status != domain.PaymentStatusApproved {
		r.logger.WithFields(log.Fields{
			"order_id": order.ID,
			"status":   status,
		}).Warn("payment declined by terminal")
		return domain.CompletedOrder{}, domain.ErrPaymentDeclined
	}

	if err := r.orders.Create(order); err != nil {
		r.logger.WithError(err).WithField("order_id", order.ID).Error("failed to persist order")
		return domain.CompletedOrder{}, err
	}

	// Количества уже провалидированы корзиной (<= stock), поэтому списание
	// не может увести остаток в минус при штатной работе.
	r.adjustStock(order.Items, -1)
	r.cart.Clear()

	r.emitEvent(order.ID, domain.EventOrderCompleted, map[string]interface{}{
		"total_minor":    order.TotalMinor,
		"items_count":    len(order.Items),
		"payment_method": order.PaymentMethod,
		"ts":             now.Format(time.RFC3339Nano),
	})
	if r.metrics != nil {
		r.metrics.RecordCheckout(order.TotalMinor, len(order.Items))
	}
	r.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"total_minor": order.TotalMinor,
	}).Info("checkout completed")

	return order, nil
}

// Cancel аннулирует заказ и возвращает склад. Операция идемпотентна:
// повторный вызов для уже аннулированного заказа ничего не делает,
// склад восстанавливается ровно один раз на переход completed → canceled.
func (r *Register) Cancel(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cancelLocked(orderID)
}

func (r *Register) cancelLocked(orderID string) error {
	order, err := r.orders.Get(orderID)
	if err != nil {
		r.logger.WithError(err).WithField("order_id", orderID).Warn("order not found for cancel")
		return err
	}
	if order.Status == domain.OrderStatusCanceled {
		r.logger.WithField("order_id", order.ID).Debug("order already canceled")
		return nil
	}

	order.Status = domain.OrderStatusCanceled
	order.UpdatedAt = time.Now().UTC()
	if err := r.orders.Save(order); err != nil {
		r.logger.WithError(err).WithField("order_id", order.ID).Error("failed to persist cancel")
		return err
	}

	// Восстановление склада выполняется только после успешной смены статуса,
	// чтобы переход применялся ровно один раз.
	r.adjustStock(order.Items, 1)

	r.emitEvent(order.ID, domain.EventOrderCanceled, map[string]interface{}{
		"ts": order.UpdatedAt.Format(time.RFC3339Nano),
	})
	if r.metrics != nil {
		r.metrics.RecordOrderCanceled()
	}
	r.logger.WithField("order_id", order.ID).Info("order canceled, stock restored")
	return nil
}

// Delete навсегда удаляет запись заказа из истории. Склад не трогается:
// его эффект уже применён или возвращён предыдущими checkout/cancel.
func (r *Register) Delete(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.orders.Delete(orderID); err != nil {
		r.logger.WithError(err).WithField("order_id", orderID).Warn("order not found for delete")
		return err
	}

	r.emitEvent(orderID, domain.EventOrderDeleted, nil)
	if r.metrics != nil {
		r.metrics.RecordOrderDeleted()
	}
	r.logger.WithField("order_id", orderID).Info("order record deleted")
	return nil
}

// Edit переводит заказ на правку: аннулирует его (с возвратом склада)
// и загружает позиции с покупателем обратно в корзину для повторного checkout.
// История не мутируется задним числом — правка всегда рождает новый заказ.
func (r *Register) Edit(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, err := r.orders.Get(orderID)
	if err != nil {
		r.logger.WithError(err).WithField("order_id", orderID).Warn("order not found for edit")
		return err
	}

	if err := r.cancelLocked(order.ID); err != nil {
		return err
	}
	r.cart.Load(order.Items, order.Customer)

	if r.metrics != nil {
		r.metrics.RecordOrderEdited()
	}
	r.logger.WithField("order_id", order.ID).Info("order loaded into cart for editing")
	return nil
}

// TransferCustomer заменяет ссылку на покупателя у заказа.
// Позиции, итоги и склад не меняются. Пустой customerID отвязывает покупателя.
func (r *Register) TransferCustomer(orderID, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, err := r.orders.Get(orderID)
	if err != nil {
		r.logger.WithError(err).WithField("order_id", orderID).Warn("order not found for transfer")
		return err
	}

	if customerID == "" {
		order.Customer = nil
	} else {
		customer, err := r.customers.Get(customerID)
		if err != nil {
			r.logger.WithError(err).WithField("customer_id", customerID).Warn("customer not found for transfer")
			return err
		}
		order.Customer = &customer
	}

	order.UpdatedAt = time.Now().UTC()
	if err := r.orders.Save(order); err != nil {
		r.logger.WithError(err).WithField("order_id", order.ID).Error("failed to persist transfer")
		return err
	}

	r.emitEvent(order.ID, domain.EventOrderTransferred, map[string]interface{}{
		"customer_id": customerID,
	})
	r.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
	}).Info("order customer transferred")
	return nil
}

// Split выделяет часть позиций заказа в новый завершённый заказ.
// Количества в выборке тихо ограничиваются количеством в исходной позиции;
// позиции, отсутствующие в заказе, игнорируются. Склад не корректируется:
// товар уже продан при исходном checkout, split лишь перераспределяет учёт.
// Полностью разобранный исходный заказ остаётся в истории пустым с нулевыми итогами.
func (r *Register) Split(orderID string, selections []domain.SplitSelection) (domain.CompletedOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, err := r.orders.Get(orderID)
	if err != nil {
		r.logger.WithError(err).WithField("order_id", orderID).Warn("order not found for split")
		return domain.CompletedOrder{}, err
	}

	wanted := make(map[string]int32, len(selections))
	for _, sel := range selections {
		if sel.Qty > 0 {
			wanted[sel.ProductID] += sel.Qty
		}
	}
	if len(wanted) == 0 {
		return domain.CompletedOrder{}, domain.ErrNothingToSplit
	}

	// Обе части собираются в порядке позиций исходного заказа.
	splitItems := make([]domain.OrderItem, 0, len(wanted))
	remaining := make([]domain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		qty, ok := wanted[item.ID]
		if !ok {
			remaining = append(remaining, item)
			continue
		}
		if qty > item.Qty {
			qty = item.Qty
		}
		moved := item
		moved.Qty = qty
		splitItems = append(splitItems, moved)

		if left := item.Qty - qty; left > 0 {
			kept := item
			kept.Qty = left
			remaining = append(remaining, kept)
		}
	}
	if len(splitItems) == 0 {
		return domain.CompletedOrder{}, domain.ErrNothingToSplit
	}

	now := time.Now().UTC()
	exempt := order.TaxExempt()
	splitOrder := domain.CompletedOrder{
		ID:            uuid.NewString(),
		Items:         splitItems,
		Customer:      order.Customer,
		Totals:        domain.ComputeTotals(splitItems, exempt, r.taxRateBP),
		PaymentMethod: order.PaymentMethod,
		Status:        domain.OrderStatusCompleted,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	order.Items = remaining
	order.Totals = domain.ComputeTotals(remaining, exempt, r.taxRateBP)
	order.UpdatedAt = now
	if err := r.orders.Save(order); err != nil {
		r.logger.WithError(err).WithField("order_id", order.ID).Error("failed to persist split origin")
		return domain.CompletedOrder{}, err
	}
	if err := r.orders.Create(splitOrder); err != nil {
		r.logger.WithError(err).WithField("order_id", splitOrder.ID).Error("failed to persist split order")
		return domain.CompletedOrder{}, err
	}

	r.emitEvent(splitOrder.ID, domain.EventOrderSplit, map[string]interface{}{
		"origin_order_id": order.ID,
		"split_total":     splitOrder.TotalMinor,
		"origin_total":    order.TotalMinor,
		"ts":              now.Format(time.RFC3339Nano),
	})
	if r.metrics != nil {
		r.metrics.RecordOrderSplit()
	}
	r.logger.WithFields(log.Fields{
		"order_id":       order.ID,
		"split_order_id": splitOrder.ID,
	}).Info("order split")

	return splitOrder, nil
}

// Orders возвращает историю заказов от новых к старым.
func (r *Register) Orders(limit int) ([]domain.CompletedOrder, error) {
	return r.orders.List(limit)
}

// Stats агрегирует историю продаж для дашборда.
func (r *Register) Stats() (Stats, error) {
	orders, err := r.orders.List(0)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, order := range orders {
		if order.Status != domain.OrderStatusCompleted {
			stats.CanceledOrders++
			continue
		}
		stats.CompletedOrders++
		stats.GrossSalesMinor += order.TotalMinor
		for _, item := range order.Items {
			stats.ItemsSold += int64(item.Qty)
		}
	}
	return stats, nil
}

// adjustStock применяет изменение склада ко всем позициям заказа.
// Товар, удалённый из каталога, пропускается: заказ хранит исторический снимок.
func (r *Register) adjustStock(items []domain.OrderItem, sign int32) {
	for _, item := range items {
		if _, err := r.products.AdjustStock(item.ID, sign*item.Qty); err != nil {
			r.logger.WithError(err).WithFields(log.Fields{
				"product_id": item.ID,
				"delta":      sign * item.Qty,
			}).Warn("stock adjustment skipped")
		}
	}
}

func (r *Register) emitEvent(orderID, eventType string, payload map[string]interface{}) {
	if r.outbox == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["order_id"] = orderID

	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Error("marshal event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   orderID,
		EventType:     eventType,
		Payload:       data,
	}
	if _, err := r.outbox.Enqueue(msg); err != nil {
		r.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Error("enqueue event failed")
		return
	}
	if r.metrics != nil {
		r.metrics.RecordOutboxEvent()
	}
}
