package memrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
)

// 記憶體版gateway實作, 測試與本機離線模式使用
// 行為對齊redis/postgres實作: 讀寫深拷貝, 數量歸零即刪除

type CartStore struct {
	mu    sync.RWMutex
	lines map[int]map[string]model.CartItem

	// 錯誤注入, 測試persistence failure路徑用
	LoadErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error
	ClearErr  error
}

func NewCartStore() *CartStore {
	return &CartStore{lines: make(map[int]map[string]model.CartItem)}
}

func (s *CartStore) LoadCartLines(ctx context.Context, userID int) ([]model.CartItem, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]model.CartItem, 0, len(s.lines[userID]))
	for _, line := range s.lines[userID] {
		line.Item = line.Item.Snapshot()
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].CartItemID < lines[j].CartItemID
	})
	return lines, nil
}

func (s *CartStore) InsertCartLine(ctx context.Context, line model.CartItem) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lines[line.UserID] == nil {
		s.lines[line.UserID] = make(map[string]model.CartItem)
	}
	line.Item = line.Item.Snapshot()
	s.lines[line.UserID][line.CartItemID] = line
	return nil
}

func (s *CartStore) UpdateCartLineQuantity(ctx context.Context, userID int, cartItemID string, quantity int) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[userID][cartItemID]
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrCartLineNotFound, cartItemID)
	}
	if quantity <= 0 {
		delete(s.lines[userID], cartItemID)
		return nil
	}
	line.Quantity = quantity
	s.lines[userID][cartItemID] = line
	return nil
}

func (s *CartStore) DeleteCartLine(ctx context.Context, userID int, cartItemID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[userID][cartItemID]; !ok {
		return fmt.Errorf("%w: %s", repository.ErrCartLineNotFound, cartItemID)
	}
	delete(s.lines[userID], cartItemID)
	return nil
}

func (s *CartStore) ClearCart(ctx context.Context, userID int) error {
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lines, userID)
	return nil
}

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]model.Order

	InsertErr error
	DeleteErr error
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]model.Order)}
}

func (s *OrderStore) InsertOrder(ctx context.Context, order *model.Order) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *order
	cp.OrderItems = make([]model.OrderItem, len(order.OrderItems))
	copy(cp.OrderItems, order.OrderItems)
	s.orders[order.OrderID] = cp
	return nil
}

func (s *OrderStore) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrOrderNotFound, orderID)
	}
	cp := order
	cp.OrderItems = make([]model.OrderItem, len(order.OrderItems))
	copy(cp.OrderItems, order.OrderItems)
	return &cp, nil
}

func (s *OrderStore) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].PlacedAt.Before(orders[j].PlacedAt)
	})
	return orders, nil
}

func (s *OrderStore) HardDeleteOrder(ctx context.Context, orderID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, orderID)
	return nil
}

type FavoriteStore struct {
	mu   sync.RWMutex
	favs map[int]map[string]model.Favorite
}

func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{favs: make(map[int]map[string]model.Favorite)}
}

func (s *FavoriteStore) InsertFavorite(ctx context.Context, fav *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favs[fav.UserID] == nil {
		s.favs[fav.UserID] = make(map[string]model.Favorite)
	}
	s.favs[fav.UserID][fav.ItemID] = *fav
	return nil
}

func (s *FavoriteStore) DeleteFavorite(ctx context.Context, userID int, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.favs[userID], itemID)
	return nil
}

func (s *FavoriteStore) GetFavoritesByUserID(ctx context.Context, userID int) ([]model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favs := make([]model.Favorite, 0, len(s.favs[userID]))
	for _, fav := range s.favs[userID] {
		favs = append(favs, fav)
	}
	sort.Slice(favs, func(i, j int) bool {
		return favs[i].ItemID < favs[j].ItemID
	})
	return favs, nil
}

func (s *FavoriteStore) IsFavorite(ctx context.Context, userID int, itemID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favs[userID][itemID]
	return ok, nil
}

var (
	_ repository.CartRepository     = (*CartStore)(nil)
	_ repository.OrderRepository    = (*OrderStore)(nil)
	_ repository.FavoriteRepository = (*FavoriteStore)(nil)
)
