package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository/memrepo"
	"github.com/stretchr/testify/require"
)

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoriteService(memrepo.NewFavoriteStore())

	item := margherita()

	favorited, err := svc.ToggleFavorite(ctx, testUserID, item)
	require.NoError(t, err)
	require.True(t, favorited)

	ok, err := svc.IsFavorite(ctx, testUserID, item)
	require.NoError(t, err)
	require.True(t, ok)

	// 再toggle一次取消收藏
	favorited, err = svc.ToggleFavorite(ctx, testUserID, item)
	require.NoError(t, err)
	require.False(t, favorited)

	ok, err = svc.IsFavorite(ctx, testUserID, item)
	require.NoError(t, err)
	require.False(t, ok)
}

// 收藏判斷沿用購物車合併的商品識別規則: 同名即同商品, 選項狀態無關
func TestIsFavorite_SharedIdentityRule(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoriteService(memrepo.NewFavoriteStore())

	_, err := svc.ToggleFavorite(ctx, testUserID, margherita())
	require.NoError(t, err)

	ok, err := svc.IsFavorite(ctx, testUserID, margherita("Extra cheese"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestListFavorites(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoriteService(memrepo.NewFavoriteStore())

	_, err := svc.ToggleFavorite(ctx, testUserID, margherita())
	require.NoError(t, err)

	favs, err := svc.ListFavorites(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, "Margherita", favs[0].ItemID)
}
