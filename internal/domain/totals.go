package domain

// DefaultTaxRateBP — ставка налога по умолчанию в базисных пунктах (800 = 8%).
const DefaultTaxRateBP = 800

// Totals — денежные агрегаты заказа в минимальных денежных единицах.
type Totals struct {
	SubtotalMinor int64 `json:"subtotal_minor"`
	TaxMinor      int64 `json:"tax_minor"`
	TotalMinor    int64 `json:"total_minor"`
}

// ComputeTotals вычисляет итоги по списку позиций.
// Функция чистая и детерминированная: пустой список даёт нули, ошибок нет.
// Итоги всегда пересчитываются заново, а не корректируются инкрементально,
// поэтому они не могут разойтись с позициями, которые описывают.
//
// Налог считается как subtotal × ставка (в базисных пунктах) с округлением
// half-up до минимальной денежной единицы; для tax-exempt покупателя налог равен нулю.
func ComputeTotals(items []OrderItem, taxExempt bool, taxRateBP int64) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotalMinor()
	}

	var tax int64
	if !taxExempt && taxRateBP > 0 {
		tax = (subtotal*taxRateBP + 5000) / 10000
	}

	return Totals{
		SubtotalMinor: subtotal,
		TaxMinor:      tax,
		TotalMinor:    subtotal + tax,
	}
}
