package domain

// CategoryAll — псевдокатегория "все товары" в фильтре каталога.
const CategoryAll = "all"

// Category описывает группу товаров в каталоге.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product — позиция каталога магазина.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	// PriceMinor — цена за единицу в минимальных денежных единицах (центы).
	PriceMinor int64  `json:"price_minor"`
	SKU        string `json:"sku"`
	// Stock — доступный к продаже остаток; уменьшается при checkout, восстанавливается при отмене.
	Stock    int32  `json:"stock"`
	ImageURL string `json:"image_url"`
	Unit     string `json:"unit,omitempty"`
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrStockNegative)
	}

	return errs
}

// Customer — покупатель с программой лояльности.
// Движок заказов никогда не мутирует запись покупателя, только ссылается на неё.
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LoyaltyPoints int32  `json:"loyalty_points"`
	// TaxExempt обнуляет налоговую составляющую итогов заказа.
	TaxExempt bool `json:"tax_exempt"`
}
