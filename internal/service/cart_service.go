package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/producer"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrPersistenceFailure = errors.New("persistence failure")
)

type ICartService interface {
	AddToCart(ctx context.Context, userID int, item model.MenuItem) (*model.CartItem, error)
	RemoveFromCart(ctx context.Context, userID int, cartItemID string) (*model.CartItem, error)
	GetCart(ctx context.Context, userID int) (*model.Cart, error)
}

// CartService 決定新加入的商品要合併進既有項目還是開新項目
// 合併規則: 商品ID + 已選選項集合 相同即合併, 數量加總
type CartService struct {
	cartRepo  repository.CartRepository
	publisher producer.IEventPublisher
	userLocks sync.Map // userID -> *sync.Mutex
}

func NewCartService(cartRepo repository.CartRepository, publisher producer.IEventPublisher) *CartService {
	if cartRepo == nil {
		panic("cart service dependency cartRepo is nil")
	}
	if publisher == nil {
		panic("cart service dependency publisher is nil")
	}
	return &CartService{
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// 同一使用者的 掃描->寫入 必須序列化
// 否則兩個相同選擇的並發加入會各開一條項目而不是合併
func (s *CartService) lockFor(userID int) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *CartService) AddToCart(ctx context.Context, userID int, item model.MenuItem) (*model.CartItem, error) {
	return s.addToCart(ctx, userID, item, 1)
}

func (s *CartService) addToCart(ctx context.Context, userID int, item model.MenuItem, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	lines, err := s.cartRepo.LoadCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	key := item.SelectionKey()
	for _, line := range lines {
		if line.SelectionKey() != key {
			continue
		}
		line.Quantity += quantity
		if err := s.cartRepo.UpdateCartLineQuantity(ctx, userID, line.CartItemID, line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		s.publishCartChanged(ctx, producer.EventCartLineUpdated, userID, &line)
		return &line, nil
	}

	line := model.CartItem{
		CartItemID: uuid.New().String(),
		UserID:     userID,
		Item:       item.Snapshot(),
		Quantity:   quantity,
	}
	if err := s.cartRepo.InsertCartLine(ctx, line); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	s.publishCartChanged(ctx, producer.EventCartLineAdded, userID, &line)
	return &line, nil
}

// RemoveFromCart 數量減一, 歸零時整條刪除
// 回傳更新後的項目, 項目已刪除時回傳nil
func (s *CartService) RemoveFromCart(ctx context.Context, userID int, cartItemID string) (*model.CartItem, error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	lines, err := s.cartRepo.LoadCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	for _, line := range lines {
		if line.CartItemID != cartItemID {
			continue
		}
		line.Quantity--
		if line.Quantity <= 0 {
			if err := s.cartRepo.DeleteCartLine(ctx, userID, cartItemID); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
			}
			s.publishCartChanged(ctx, producer.EventCartLineRemoved, userID, nil)
			return nil, nil
		}
		if err := s.cartRepo.UpdateCartLineQuantity(ctx, userID, cartItemID, line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		s.publishCartChanged(ctx, producer.EventCartLineUpdated, userID, &line)
		return &line, nil
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrCartLineNotFound, cartItemID)
}

func (s *CartService) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	lines, err := s.cartRepo.LoadCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return &model.Cart{UserID: userID, Items: lines}, nil
}

// 事件只作通知用途, 發送失敗不影響購物車狀態
func (s *CartService) publishCartChanged(ctx context.Context, eventType string, userID int, line *model.CartItem) {
	if err := s.publisher.PublishCartChanged(ctx, eventType, userID, line); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Int("user_id", userID).Msg("failed to publish cart event")
	}
}

var _ ICartService = (*CartService)(nil)
