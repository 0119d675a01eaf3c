package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"gorm.io/gorm"
)

type FavoriteRepo struct {
	db *DbDao
}

func NewFavoriteRepo(db *DbDao) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

func (s *FavoriteRepo) InsertFavorite(ctx context.Context, fav *model.Favorite) error {
	return s.db.WithContext(ctx).Create(fav).Error
}

func (s *FavoriteRepo) DeleteFavorite(ctx context.Context, userID int, itemID string) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&model.Favorite{}).Error
}

func (s *FavoriteRepo) GetFavoritesByUserID(ctx context.Context, userID int) ([]model.Favorite, error) {
	var favs []model.Favorite
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&favs).Error
	return favs, err
}

func (s *FavoriteRepo) IsFavorite(ctx context.Context, userID int, itemID string) (bool, error) {
	var fav model.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ repository.FavoriteRepository = (*FavoriteRepo)(nil)
