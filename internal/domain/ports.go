package domain

import "time"

// PaymentTerminal описывает взаимодействие с платёжным терминалом кассы.
type PaymentTerminal interface {
	// Authorize подтверждает оплату заказа выбранным способом.
	Authorize(orderID, method string, amountMinor int64) (PaymentStatus, error)
}

// OutboxPublisher публикует события из очереди синхронизации наружу.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository хранит события для последующей best-effort публикации.
// Очередь синхронизации изолирована от операций жизненного цикла заказа:
// кассовые операции только ставят события, доставкой занимается отдельный worker.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// Типы событий жизненного цикла заказа. Единственный источник значений
// для EventType: их пишет касса и читает бэк-офис.
const (
	EventOrderCompleted   = "OrderCompleted"
	EventOrderCanceled    = "OrderCanceled"
	EventOrderDeleted     = "OrderDeleted"
	EventOrderSplit       = "OrderSplit"
	EventOrderTransferred = "OrderCustomerTransferred"
)

// OutboxMessage хранит данные публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog очереди синхронизации.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
