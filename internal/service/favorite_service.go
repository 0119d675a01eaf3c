package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
)

type IFavoriteService interface {
	ToggleFavorite(ctx context.Context, userID int, item model.MenuItem) (bool, error)
	IsFavorite(ctx context.Context, userID int, item model.MenuItem) (bool, error)
	ListFavorites(ctx context.Context, userID int) ([]model.Favorite, error)
}

// FavoriteService 我的最愛
// 是否收藏的判斷沿用購物車合併的商品識別規則 (名稱衍生ID)
type FavoriteService struct {
	favRepo repository.FavoriteRepository
}

func NewFavoriteService(favRepo repository.FavoriteRepository) *FavoriteService {
	if favRepo == nil {
		panic("favorite service dependency favRepo is nil")
	}
	return &FavoriteService{favRepo: favRepo}
}

// ToggleFavorite 回傳toggle後是否為收藏狀態
func (s *FavoriteService) ToggleFavorite(ctx context.Context, userID int, item model.MenuItem) (bool, error) {
	exists, err := s.favRepo.IsFavorite(ctx, userID, item.ID())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	if exists {
		if err := s.favRepo.DeleteFavorite(ctx, userID, item.ID()); err != nil {
			return false, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		return false, nil
	}

	fav := &model.Favorite{UserID: userID, ItemID: item.ID()}
	if err := s.favRepo.InsertFavorite(ctx, fav); err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return true, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID int, item model.MenuItem) (bool, error) {
	return s.favRepo.IsFavorite(ctx, userID, item.ID())
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID int) ([]model.Favorite, error) {
	return s.favRepo.GetFavoritesByUserID(ctx, userID)
}

var _ IFavoriteService = (*FavoriteService)(nil)
