package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/producer"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository/memrepo"
	"github.com/RoyceAzure/lab/ristorante/internal/pkg/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testDelivery() model.DeliveryInfo {
	return model.DeliveryInfo{
		Name:    "Test User",
		Address: "123 Test St",
		Phone:   "1234567890",
	}
}

func newTestOrderService() (*OrderService, *CartService, *memrepo.CartStore, *memrepo.OrderStore) {
	cartStore := memrepo.NewCartStore()
	orderStore := memrepo.NewOrderStore()
	cartSvc := NewCartService(cartStore, producer.NoopPublisher{})
	orderSvc := NewOrderService(cartStore, orderStore, producer.NoopPublisher{})
	return orderSvc, cartSvc, cartStore, orderStore
}

// 規格場景: Margherita x2 + Margherita加起司 x1, 下單後兩條明細共$32.97, 購物車清空
func TestPlaceOrder_SnapshotsCartAndClearsIt(t *testing.T) {
	ctx := context.Background()
	orderSvc, cartSvc, _, _ := newTestOrderService()

	_, err := cartSvc.AddToCart(ctx, testUserID, margherita())
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(ctx, testUserID, margherita())
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(ctx, testUserID, margherita("Extra cheese"))
	require.NoError(t, err)

	cart, err := cartSvc.GetCart(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, "$32.97", pricing.Format(pricing.CartTotal(cart.Items)))

	order, err := orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.NoError(t, err)
	require.NotEmpty(t, order.OrderID)
	require.False(t, order.PlacedAt.IsZero())
	require.Len(t, order.OrderItems, 2)
	require.Equal(t, "$32.97", pricing.Format(order.Amount))

	// 明細加總必須等於訂單總額
	sum := decimal.NewFromInt(0)
	for _, item := range order.OrderItems {
		sum = sum.Add(item.Amount)
	}
	require.True(t, order.Amount.Equal(sum))

	cart, err = cartSvc.GetCart(ctx, testUserID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	orderSvc, _, _, orderStore := newTestOrderService()

	order, err := orderSvc.PlaceOrder(ctx, testUserID, testDelivery())

	require.ErrorIs(t, err, ErrEmptyCart)
	require.Nil(t, order)

	orders, err := orderStore.GetOrdersByUserID(ctx, testUserID)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrder_InsertFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	orderSvc, cartSvc, _, orderStore := newTestOrderService()

	_, err := cartSvc.AddToCart(ctx, testUserID, margherita())
	require.NoError(t, err)

	orderStore.InsertErr = errors.New("connection refused")
	_, err = orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.ErrorIs(t, err, ErrPersistenceFailure)

	// 購物車原封不動, 可重試
	cart, err := cartSvc.GetCart(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	orderStore.InsertErr = nil
	order, err := orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)
}

// 清空購物車失敗時回滾已插入的訂單, 不留下 訂單+未清購物車 的中間態
func TestPlaceOrder_ClearFailureRollsBackOrder(t *testing.T) {
	ctx := context.Background()
	orderSvc, cartSvc, cartStore, orderStore := newTestOrderService()

	_, err := cartSvc.AddToCart(ctx, testUserID, margherita())
	require.NoError(t, err)

	cartStore.ClearErr = errors.New("connection reset")
	_, err = orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.ErrorIs(t, err, ErrPersistenceFailure)

	orders, err := orderStore.GetOrdersByUserID(ctx, testUserID)
	require.NoError(t, err)
	require.Empty(t, orders, "rolled back order must not be visible")

	cartStore.ClearErr = nil
	cart, err := cartSvc.GetCart(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestPlaceOrder_CheckoutStates(t *testing.T) {
	ctx := context.Background()
	orderSvc, cartSvc, _, orderStore := newTestOrderService()

	require.Equal(t, model.CheckoutStateOpen, orderSvc.CheckoutState(testUserID))

	// 失敗退回Open
	_, err := cartSvc.AddToCart(ctx, testUserID, margherita())
	require.NoError(t, err)
	orderStore.InsertErr = errors.New("boom")
	_, err = orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.Error(t, err)
	require.Equal(t, model.CheckoutStateOpen, orderSvc.CheckoutState(testUserID))

	// 成功進入Ordered
	orderStore.InsertErr = nil
	_, err = orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.NoError(t, err)
	require.Equal(t, model.CheckoutStateOrdered, orderSvc.CheckoutState(testUserID))

	// 新購物車可再下單
	_, err = cartSvc.AddToCart(ctx, testUserID, margherita())
	require.NoError(t, err)
	_, err = orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.NoError(t, err)
}

// 下單後菜單改價不影響歷史訂單
func TestPlaceOrder_HistoricalOrderImmutable(t *testing.T) {
	ctx := context.Background()
	orderSvc, cartSvc, _, _ := newTestOrderService()

	item := margherita()
	_, err := cartSvc.AddToCart(ctx, testUserID, item)
	require.NoError(t, err)

	order, err := orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.NoError(t, err)

	item.Price = decimal.NewFromFloat(99.99)

	stored, err := orderSvc.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromFloat(10.99).Equal(stored.OrderItems[0].UnitPrice))
	require.True(t, decimal.NewFromFloat(10.99).Equal(stored.Amount))
}

func TestPlaceOrder_RecordsSelectedOptions(t *testing.T) {
	ctx := context.Background()
	orderSvc, cartSvc, _, _ := newTestOrderService()

	_, err := cartSvc.AddToCart(ctx, testUserID, margherita("Gluten free base", "Extra cheese"))
	require.NoError(t, err)

	order, err := orderSvc.PlaceOrder(ctx, testUserID, testDelivery())
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)
	// 選項名稱排序後凍結
	require.Equal(t, "Extra cheese,Gluten free base", order.OrderItems[0].SelectedOptions)
}

func TestGetOrder_NotFound(t *testing.T) {
	ctx := context.Background()
	orderSvc, _, _, _ := newTestOrderService()

	_, err := orderSvc.GetOrder(ctx, "missing-order")
	require.Error(t, err)
}
