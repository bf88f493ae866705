package domain

// PaymentStatus описывает результат авторизации оплаты на терминале.
type PaymentStatus string

const (
	// PaymentStatusApproved — оплата подтверждена терминалом.
	PaymentStatusApproved PaymentStatus = "approved"
	// PaymentStatusDeclined — терминал отклонил оплату.
	PaymentStatusDeclined PaymentStatus = "declined"
)

// Payment фиксирует результат оплаты для чека.
type Payment struct {
	OrderID     string        `json:"order_id"`
	Method      string        `json:"method"`
	AmountMinor int64         `json:"amount_minor"`
	Status      PaymentStatus `json:"status"`
}

// ValidateInvariants проверяет корректность платёжной записи.
func (p *Payment) ValidateInvariants() []error {
	var errs []error

	if p.OrderID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if p.Method == "" {
		errs = append(errs, ErrPaymentMethodRequired)
	}
	if p.AmountMinor < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}

	return errs
}
