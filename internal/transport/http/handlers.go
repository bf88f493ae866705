package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allyelvis/pos-kiosk/internal/domain"
)

// respondError переводит доменные ошибки в HTTP-статусы:
// отсутствующие записи — 404, конфликты — 409, отказ оплаты — 402,
// остальные нарушения валидации — 400.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCategoryInUse), domain.IsVersionConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrNothingToSplit),
		errors.Is(err, domain.ErrPaymentMethodRequired),
		errors.Is(err, domain.ErrCategoryInvalid),
		errors.Is(err, domain.ErrCustomerInvalid),
		errors.Is(err, domain.ErrProductIDRequired),
		errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrItemPriceInvalid),
		errors.Is(err, domain.ErrStockNegative):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.catalog.Categories()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) saveCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.catalog.SaveCategory(category); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.catalog.DeleteCategory(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.Products(c.Query("category"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) saveProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.catalog.SaveProduct(product); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.catalog.DeleteProduct(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.catalog.Customers()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (s *Server) saveCustomer(c *gin.Context) {
	var customer domain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.catalog.SaveCustomer(customer); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

type cartView struct {
	Items    []domain.OrderItem `json:"items"`
	Customer *domain.Customer   `json:"customer,omitempty"`
	domain.Totals
}

func (s *Server) cartSnapshot() cartView {
	cart := s.register.Cart()
	return cartView{
		Items:    cart.Items(),
		Customer: cart.Customer(),
		Totals:   cart.Totals(s.register.TaxRateBP()),
	}
}

func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, s.cartSnapshot())
}

func (s *Server) addCartItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.catalog.Product(req.ProductID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.register.Cart().Add(product)
	c.JSON(http.StatusOK, s.cartSnapshot())
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req struct {
		Quantity int32 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.register.Cart().UpdateQuantity(c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, s.cartSnapshot())
}

func (s *Server) setCartCustomer(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CustomerID == "" {
		s.register.Cart().SetCustomer(nil)
		c.JSON(http.StatusOK, s.cartSnapshot())
		return
	}

	customer, err := s.catalog.Customer(req.CustomerID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.register.Cart().SetCustomer(&customer)
	c.JSON(http.StatusOK, s.cartSnapshot())
}

func (s *Server) clearCart(c *gin.Context) {
	s.register.Cart().Clear()
	c.Status(http.StatusNoContent)
}

func (s *Server) checkout(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := s.register.Checkout(req.PaymentMethod)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	orders, err := s.register.Orders(limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) cancelOrder(c *gin.Context) {
	if err := s.register.Cancel(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": c.Param("id"), "status": string(domain.OrderStatusCanceled)})
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.register.Delete(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) editOrder(c *gin.Context) {
	if err := s.register.Edit(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.cartSnapshot())
}

func (s *Server) transferOrderCustomer(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.register.TransferCustomer(c.Param("id"), req.CustomerID); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": c.Param("id"), "customer_id": req.CustomerID})
}

func (s *Server) splitOrder(c *gin.Context) {
	var req struct {
		Selections []domain.SplitSelection `json:"selections" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	split, err := s.register.Split(c.Param("id"), req.Selections)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, split)
}

func (s *Server) getStats(c *gin.Context) {
	stats, err := s.register.Stats()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
