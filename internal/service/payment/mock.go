package payment

import "github.com/allyelvis/pos-kiosk/internal/domain"

// MockTerminal — конфигурируемая заглушка платёжного терминала.
// Демо-касса не проводит реальные платежи, поэтому терминал по умолчанию
// одобряет любую авторизацию.
type MockTerminal struct {
	Status domain.PaymentStatus
	Err    error

	AuthorizeCalls int
	LastAmount     int64
	LastMethod     string
}

// NewMockTerminal возвращает терминал с успешным сценарием по умолчанию.
func NewMockTerminal() *MockTerminal {
	return &MockTerminal{
		Status: domain.PaymentStatusApproved,
	}
}

// Authorize возвращает заранее настроенный результат и считает вызовы.
func (m *MockTerminal) Authorize(orderID, method string, amountMinor int64) (domain.PaymentStatus, error) {
	m.AuthorizeCalls++
	m.LastAmount = amountMinor
	m.LastMethod = method
	return m.Status, m.Err
}

var _ domain.PaymentTerminal = (*MockTerminal)(nil)
