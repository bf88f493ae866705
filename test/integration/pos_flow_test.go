package integration

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/allyelvis/pos-kiosk/internal/domain"
	"github.com/allyelvis/pos-kiosk/internal/service/cart"
	"github.com/allyelvis/pos-kiosk/internal/service/catalog"
	"github.com/allyelvis/pos-kiosk/internal/service/outbox"
	"github.com/allyelvis/pos-kiosk/internal/service/payment"
	"github.com/allyelvis/pos-kiosk/internal/service/register"
	"github.com/allyelvis/pos-kiosk/internal/storage/memory"
)

// PosFlowTestSuite прогоняет полный жизненный цикл заказа через все сервисы кассы.
type PosFlowTestSuite struct {
	suite.Suite
	register  *register.Register
	catalog   *catalog.Service
	cart      *cart.Cart
	products  domain.ProductRepository
	orders    domain.OrderRepository
	events    domain.OutboxRepository
	terminal  *payment.MockTerminal
	published []domain.OutboxMessage
}

type capturePublisher struct {
	sink *[]domain.OutboxMessage
}

func (p *capturePublisher) Publish(event domain.OutboxMessage) error {
	*p.sink = append(*p.sink, event)
	return nil
}

func (suite *PosFlowTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	logger := baseLogger.WithField("component", "integration-test")

	suite.products = memory.NewProductRepository()
	categories := memory.NewCategoryRepository()
	customers := memory.NewCustomerRepository()
	suite.orders = memory.NewOrderRepository()
	suite.events = memory.NewOutboxRepository()
	suite.terminal = payment.NewMockTerminal()
	suite.cart = cart.New()
	suite.published = nil

	suite.catalog = catalog.New(suite.products, categories, customers, logger)
	require.NoError(suite.T(), suite.catalog.SaveCategory(domain.Category{ID: "beverages", Name: "Beverages"}))
	require.NoError(suite.T(), suite.catalog.SaveCategory(domain.Category{ID: "electronics", Name: "Electronics"}))
	require.NoError(suite.T(), suite.catalog.SaveProduct(domain.Product{
		ID: "p1", Name: "Espresso", CategoryID: "beverages", PriceMinor: 350, SKU: "BEV-001", Stock: 100,
	}))
	require.NoError(suite.T(), suite.catalog.SaveProduct(domain.Product{
		ID: "p5", Name: "Headphones", CategoryID: "electronics", PriceMinor: 7999, SKU: "ELE-001", Stock: 30,
	}))
	require.NoError(suite.T(), suite.catalog.SaveCustomer(domain.Customer{
		ID: "c1", Name: "Alice Johnson", Email: "alice@example.com", LoyaltyPoints: 1250,
	}))

	suite.register = register.NewWithoutMetrics(
		suite.cart, suite.orders, suite.products, customers,
		suite.terminal, suite.events, domain.DefaultTaxRateBP, logger,
	)
}

func (suite *PosFlowTestSuite) mustProduct(id string) domain.Product {
	product, err := suite.products.Get(id)
	require.NoError(suite.T(), err)
	return product
}

func (suite *PosFlowTestSuite) checkout(method string) domain.CompletedOrder {
	order, err := suite.register.Checkout(method)
	require.NoError(suite.T(), err)
	return order
}

// TestFullLifecycle: продажа, split, перенос покупателя, отмена, удаление
// и доставка событий воркером синхронизации.
func (suite *PosFlowTestSuite) TestFullLifecycle() {
	t := suite.T()

	// Продажа: 2 x Espresso + 1 x Headphones.
	suite.cart.Add(suite.mustProduct("p1"))
	suite.cart.Add(suite.mustProduct("p1"))
	suite.cart.Add(suite.mustProduct("p5"))
	order := suite.checkout("card")

	require.Equal(t, int64(9395), order.TotalMinor)
	require.Equal(t, int32(98), suite.mustProduct("p1").Stock)
	require.Equal(t, int32(29), suite.mustProduct("p5").Stock)
	require.True(t, suite.cart.IsEmpty())

	// Split: наушники уходят в отдельный заказ.
	split, err := suite.register.Split(order.ID, []domain.SplitSelection{{ProductID: "p5", Qty: 1}})
	require.NoError(t, err)
	require.Len(t, split.Items, 1)

	origin, err := suite.orders.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, origin.Items, 1)
	require.Equal(t, origin.SubtotalMinor+split.SubtotalMinor, order.SubtotalMinor)
	// Склад при split не меняется.
	require.Equal(t, int32(29), suite.mustProduct("p5").Stock)

	// Перенос покупателя на исходный заказ.
	require.NoError(t, suite.register.TransferCustomer(order.ID, "c1"))
	origin, err = suite.orders.Get(order.ID)
	require.NoError(t, err)
	require.NotNil(t, origin.Customer)
	require.Equal(t, "c1", origin.Customer.ID)

	// Отмена split-заказа возвращает склад ровно один раз.
	require.NoError(t, suite.register.Cancel(split.ID))
	require.Equal(t, int32(30), suite.mustProduct("p5").Stock)
	require.NoError(t, suite.register.Cancel(split.ID))
	require.Equal(t, int32(30), suite.mustProduct("p5").Stock)

	// Удаление записи не трогает склад.
	require.NoError(t, suite.register.Delete(split.ID))
	require.Equal(t, int32(30), suite.mustProduct("p5").Stock)
	_, err = suite.orders.Get(split.ID)
	require.Equal(t, domain.ErrOrderNotFound, err)

	// Воркер синхронизации доставляет накопленные события.
	publisher := &capturePublisher{sink: &suite.published}
	worker := outbox.NewWorker(suite.events, publisher, nil, outbox.Config{RetryBaseDelay: 0}, nil)
	worker.ProcessOnce(context.Background())

	types := make([]string, 0, len(suite.published))
	for _, event := range suite.published {
		types = append(types, event.EventType)
	}
	require.Equal(t, []string{
		domain.EventOrderCompleted,
		domain.EventOrderSplit,
		domain.EventOrderTransferred,
		domain.EventOrderCanceled,
		domain.EventOrderDeleted,
	}, types)

	stats, err := suite.events.Stats()
	require.NoError(t, err)
	require.Zero(t, stats.PendingCount)
}

// TestEditFlow: правка заказа рождает новый заказ, история не мутируется задним числом.
func (suite *PosFlowTestSuite) TestEditFlow() {
	t := suite.T()

	suite.cart.Add(suite.mustProduct("p1"))
	original := suite.checkout("cash")

	require.NoError(t, suite.register.Edit(original.ID))
	require.Equal(t, int32(100), suite.mustProduct("p1").Stock)
	require.False(t, suite.cart.IsEmpty())

	// Дополняем заказ и пробиваем заново.
	suite.cart.Add(suite.mustProduct("p5"))
	reissued := suite.checkout("cash")

	require.NotEqual(t, original.ID, reissued.ID)
	require.Len(t, reissued.Items, 2)

	orders, err := suite.orders.List(0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, reissued.ID, orders[0].ID)
	require.Equal(t, domain.OrderStatusCanceled, orders[1].Status)
}

// TestDeclinedPayment: отказ терминала не оставляет следов.
func (suite *PosFlowTestSuite) TestDeclinedPayment() {
	t := suite.T()

	suite.cart.Add(suite.mustProduct("p1"))
	suite.terminal.Status = domain.PaymentStatusDeclined

	_, err := suite.register.Checkout("card")
	require.Equal(t, domain.ErrPaymentDeclined, err)
	require.Equal(t, int32(100), suite.mustProduct("p1").Stock)
	require.False(t, suite.cart.IsEmpty())

	orders, listErr := suite.orders.List(0)
	require.NoError(t, listErr)
	require.Empty(t, orders)
}

func TestPosFlowTestSuite(t *testing.T) {
	suite.Run(t, new(PosFlowTestSuite))
}
