package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/producer"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"github.com/RoyceAzure/lab/ristorante/internal/pkg/pricing"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

type IOrderService interface {
	PlaceOrder(ctx context.Context, userID int, delivery model.DeliveryInfo) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	CheckoutState(userID int) uint32
}

// OrderService 把購物車收斂成一筆不可變的訂單
// 狀態機: Open -> Finalizing -> Ordered, 失敗退回Open且購物車原封不動
type OrderService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	publisher producer.IEventPublisher
	states    sync.Map // userID -> *atomic.Uint32
}

func NewOrderService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, publisher producer.IEventPublisher) *OrderService {
	if cartRepo == nil {
		panic("order service dependency cartRepo is nil")
	}
	if orderRepo == nil {
		panic("order service dependency orderRepo is nil")
	}
	if publisher == nil {
		panic("order service dependency publisher is nil")
	}
	return &OrderService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

func (o *OrderService) stateFor(userID int) *atomic.Uint32 {
	st, _ := o.states.LoadOrStore(userID, &atomic.Uint32{})
	return st.(*atomic.Uint32)
}

// CheckoutState 目前結帳狀態, Ordered表示上一個購物車已完成下單
func (o *OrderService) CheckoutState(userID int) uint32 {
	return o.stateFor(userID).Load()
}

// PlaceOrder 結帳
// 插入訂單與清空購物車視為一個邏輯單元:
// 清空失敗時硬刪除剛插入的訂單做補償回滾, 不留下 訂單+未清購物車 的中間態
func (o *OrderService) PlaceOrder(ctx context.Context, userID int, delivery model.DeliveryInfo) (*model.Order, error) {
	st := o.stateFor(userID)
	if !st.CompareAndSwap(model.CheckoutStateOpen, model.CheckoutStateFinalizing) &&
		!st.CompareAndSwap(model.CheckoutStateOrdered, model.CheckoutStateFinalizing) {
		return nil, ErrCheckoutInProgress
	}

	order, err := o.finalize(ctx, userID, delivery)
	if err != nil {
		st.Store(model.CheckoutStateOpen)
		return nil, err
	}
	st.Store(model.CheckoutStateOrdered)

	if err := o.publisher.PublishOrderPlaced(ctx, order); err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to publish order placed event")
	}
	return order, nil
}

func (o *OrderService) finalize(ctx context.Context, userID int, delivery model.DeliveryInfo) (*model.Order, error) {
	lines, err := o.cartRepo.LoadCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := buildOrder(userID, delivery, lines)

	if err := o.orderRepo.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	if err := o.cartRepo.ClearCart(ctx, userID); err != nil {
		// 補償回滾, 不能同時存在訂單與未清空的購物車
		if rbErr := o.orderRepo.HardDeleteOrder(ctx, order.OrderID); rbErr != nil {
			log.Error().Err(rbErr).Str("order_id", order.OrderID).Msg("checkout rollback failed, order needs manual cleanup")
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return order, nil
}

// buildOrder 深拷貝購物車項目成訂單明細
// 之後菜單改價不影響已成立訂單
func buildOrder(userID int, delivery model.DeliveryInfo, lines []model.CartItem) *model.Order {
	orderID := uuid.New().String()
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			OrderID:         orderID,
			ItemID:          line.Item.ID(),
			ItemName:        line.Item.Name,
			SelectedOptions: strings.Join(line.Item.SelectedOptions(), ","),
			UnitPrice:       line.Item.Price,
			Quantity:        line.Quantity,
			Amount:          pricing.LineTotal(line),
		})
	}
	return &model.Order{
		OrderID:      orderID,
		UserID:       userID,
		OrderItems:   items,
		Amount:       pricing.CartTotal(lines),
		DeliveryInfo: delivery,
		PlacedAt:     time.Now(),
	}
}

func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return o.orderRepo.GetOrderByID(ctx, orderID)
}

func (o *OrderService) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByUserID(ctx, userID)
}

var _ IOrderService = (*OrderService)(nil)
