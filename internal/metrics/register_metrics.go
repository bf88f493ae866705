package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics содержит метрики кассовых операций.
type RegisterMetrics struct {
	// Счётчики операций жизненного цикла заказа
	checkouts      prometheus.Counter
	ordersCanceled prometheus.Counter
	ordersDeleted  prometheus.Counter
	ordersSplit    prometheus.Counter
	ordersEdited   prometheus.Counter

	// Выручка по завершённым заказам в минимальных денежных единицах
	revenueMinor prometheus.Counter

	// Гистограммы
	checkoutDuration prometheus.Histogram
	orderItems       prometheus.Histogram

	// Счётчик событий очереди синхронизации
	outboxEvents prometheus.Counter
}

// NewRegisterMetrics создаёт новый экземпляр метрик кассы.
func NewRegisterMetrics() *RegisterMetrics {
	return newRegisterMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newRegisterMetricsWithRegisterer(registerer prometheus.Registerer) *RegisterMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &RegisterMetrics{
		checkouts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_checkouts_total",
			Help: "Total number of completed checkouts",
		}),
		ordersCanceled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_orders_canceled_total",
			Help: "Total number of orders voided with stock restored",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_orders_deleted_total",
			Help: "Total number of order records deleted from history",
		}),
		ordersSplit: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_orders_split_total",
			Help: "Total number of split operations performed",
		}),
		ordersEdited: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_orders_edited_total",
			Help: "Total number of orders reloaded into the cart for editing",
		}),
		revenueMinor: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_revenue_minor_total",
			Help: "Gross revenue of completed checkouts in minor currency units",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pos_checkout_duration_seconds",
			Help:    "Duration of checkout operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		orderItems: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pos_order_items",
			Help:    "Number of line items per completed order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_outbox_events_total",
			Help: "Total number of order events enqueued for sync",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCheckout фиксирует завершённый checkout: выручку и размер заказа.
func (m *RegisterMetrics) RecordCheckout(totalMinor int64, itemCount int) {
	m.checkouts.Inc()
	if totalMinor > 0 {
		m.revenueMinor.Add(float64(totalMinor))
	}
	m.orderItems.Observe(float64(itemCount))
}

// RecordCheckoutDuration записывает время выполнения checkout.
func (m *RegisterMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordOrderCanceled увеличивает счётчик аннулированных заказов.
func (m *RegisterMetrics) RecordOrderCanceled() {
	m.ordersCanceled.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых записей.
func (m *RegisterMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
}

// RecordOrderSplit увеличивает счётчик split-операций.
func (m *RegisterMetrics) RecordOrderSplit() {
	m.ordersSplit.Inc()
}

// RecordOrderEdited увеличивает счётчик заказов, отправленных на правку.
func (m *RegisterMetrics) RecordOrderEdited() {
	m.ordersEdited.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий очереди синхронизации.
func (m *RegisterMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}
