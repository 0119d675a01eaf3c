package repository

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
)

var (
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// CartRepository 購物車儲存, 購物車階段只寫這裡不落DB
type CartRepository interface {
	LoadCartLines(ctx context.Context, userID int) ([]model.CartItem, error)
	InsertCartLine(ctx context.Context, line model.CartItem) error
	// UpdateCartLineQuantity 設定絕對數量, quantity <= 0 時整條刪除
	UpdateCartLineQuantity(ctx context.Context, userID int, cartItemID string, quantity int) error
	DeleteCartLine(ctx context.Context, userID int, cartItemID string) error
	ClearCart(ctx context.Context, userID int) error
}

// OrderRepository 訂單儲存, 下單後的訂單為不可變歷史紀錄
type OrderRepository interface {
	InsertOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	// HardDeleteOrder 只給結帳補償回滾使用
	HardDeleteOrder(ctx context.Context, orderID string) error
}

type FavoriteRepository interface {
	InsertFavorite(ctx context.Context, fav *model.Favorite) error
	DeleteFavorite(ctx context.Context, userID int, itemID string) error
	GetFavoritesByUserID(ctx context.Context, userID int) ([]model.Favorite, error)
	IsFavorite(ctx context.Context, userID int, itemID string) (bool, error)
}
