package http

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/allyelvis/pos-kiosk/internal/service/catalog"
	"github.com/allyelvis/pos-kiosk/internal/service/register"
)

// Server — HTTP JSON API кассы для браузерного UI.
type Server struct {
	register *register.Register
	catalog  *catalog.Service
	logger   *log.Entry
	engine   *gin.Engine
}

// NewServer собирает gin-роутер со всеми маршрутами кассы.
func NewServer(reg *register.Register, cat *catalog.Service, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	s := &Server{
		register: reg,
		catalog:  cat,
		logger:   logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(prometheusMiddleware())

	api := engine.Group("/api/v1")
	{
		api.GET("/categories", s.listCategories)
		api.POST("/categories", s.saveCategory)
		api.DELETE("/categories/:id", s.deleteCategory)

		api.GET("/products", s.listProducts)
		api.POST("/products", s.saveProduct)
		api.DELETE("/products/:id", s.deleteProduct)

		api.GET("/customers", s.listCustomers)
		api.POST("/customers", s.saveCustomer)

		api.GET("/cart", s.getCart)
		api.POST("/cart/items", s.addCartItem)
		api.PATCH("/cart/items/:id", s.updateCartItem)
		api.PUT("/cart/customer", s.setCartCustomer)
		api.DELETE("/cart", s.clearCart)

		api.POST("/checkout", s.checkout)

		api.GET("/orders", s.listOrders)
		api.POST("/orders/:id/cancel", s.cancelOrder)
		api.DELETE("/orders/:id", s.deleteOrder)
		api.POST("/orders/:id/edit", s.editOrder)
		api.POST("/orders/:id/transfer", s.transferOrderCustomer)
		api.POST("/orders/:id/split", s.splitOrder)

		api.GET("/stats", s.getStats)
	}

	s.engine = engine
	return s
}

// Engine возвращает собранный роутер (используется сервером и тестами).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
