package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"gorm.io/gorm"
)

// 購物車階段只寫redis, 這裡只存下單後的訂單歷史
type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// InsertOrder 訂單連同明細一次寫入, 同一個transaction
func (s *OrderRepo) InsertOrder(ctx context.Context, order *model.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", repository.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("user_id = ?", userID).Order("placed_at").Find(&orders).Error
	return orders, err
}

// HardDeleteOrder 硬刪除, 僅供結帳失敗時補償回滾
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Unscoped().Where("order_id = ?", id).Delete(&model.Order{}).Error
}

var _ repository.OrderRepository = (*OrderRepo)(nil)
