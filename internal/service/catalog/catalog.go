package catalog

import (
	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// Service управляет справочниками каталога: товарами, категориями
// и покупателями. Единственная операция с бизнес-правилом — удаление
// категории: категория с привязанными товарами не удаляется.
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	customers  domain.CustomerRepository
	logger     *log.Entry
}

// New создаёт сервис каталога.
func New(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	customers domain.CustomerRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		products:   products,
		categories: categories,
		customers:  customers,
		logger:     logger,
	}
}

// SaveProduct валидирует и сохраняет товар (создание или перезапись по ID).
func (s *Service) SaveProduct(product domain.Product) error {
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		s.logger.WithField("product_id", product.ID).Warnf("product rejected: %v", errs)
		return errs[0]
	}
	if product.CategoryID != "" {
		if _, err := s.categories.Get(product.CategoryID); err != nil {
			s.logger.WithError(err).WithField("category_id", product.CategoryID).Warn("unknown product category")
			return err
		}
	}
	if err := s.products.Upsert(product); err != nil {
		return err
	}
	s.logger.WithField("product_id", product.ID).Info("product saved")
	return nil
}

// Product возвращает товар по идентификатору.
func (s *Service) Product(id string) (domain.Product, error) {
	return s.products.Get(id)
}

// Products возвращает каталог, опционально отфильтрованный по категории.
func (s *Service) Products(categoryID string) ([]domain.Product, error) {
	products, err := s.products.List()
	if err != nil {
		return nil, err
	}
	if categoryID == "" || categoryID == domain.CategoryAll {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// DeleteProduct удаляет товар из каталога. История заказов хранит
// собственные снимки товара и от удаления не страдает.
func (s *Service) DeleteProduct(id string) error {
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}

// SaveCategory сохраняет категорию.
func (s *Service) SaveCategory(category domain.Category) error {
	if category.ID == "" || category.Name == "" {
		return domain.ErrCategoryInvalid
	}
	return s.categories.Upsert(category)
}

// Categories возвращает список категорий.
func (s *Service) Categories() ([]domain.Category, error) {
	return s.categories.List()
}

// DeleteCategory удаляет категорию. Отказывает с ErrCategoryInUse,
// пока хотя бы один товар ссылается на неё.
func (s *Service) DeleteCategory(id string) error {
	if _, err := s.categories.Get(id); err != nil {
		return err
	}

	products, err := s.products.List()
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.CategoryID == id {
			s.logger.WithFields(log.Fields{
				"category_id": id,
				"product_id":  p.ID,
			}).Warn("category delete refused, products still reference it")
			return domain.ErrCategoryInUse
		}
	}

	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("category_id", id).Info("category deleted")
	return nil
}

// SaveCustomer сохраняет запись покупателя.
func (s *Service) SaveCustomer(customer domain.Customer) error {
	if customer.ID == "" || customer.Name == "" {
		return domain.ErrCustomerInvalid
	}
	return s.customers.Upsert(customer)
}

// Customer возвращает покупателя по идентификатору.
func (s *Service) Customer(id string) (domain.Customer, error) {
	return s.customers.Get(id)
}

// Customers возвращает список покупателей.
func (s *Service) Customers() ([]domain.Customer, error) {
	return s.customers.List()
}
