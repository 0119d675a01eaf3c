package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/infra/repository"
	"github.com/redis/go-redis/v9"
)

type CartRepo struct {
	CartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{CartCache: cartCache}
}

func generateCartLineKey(userID int) string {
	return fmt.Sprintf("cart:%d:lines", userID)
}

// LoadCartLines 取出購物車所有項目, 依cart_item_id排序保持穩定順序
func (r *CartRepo) LoadCartLines(ctx context.Context, userID int) ([]model.CartItem, error) {
	linesKey := generateCartLineKey(userID)

	fields, err := r.CartCache.HGetAll(ctx, linesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}

	lines := make([]model.CartItem, 0, len(fields))
	for _, raw := range fields {
		var line model.CartItem
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			return nil, fmt.Errorf("invalid cart line payload: %w", err)
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].CartItemID < lines[j].CartItemID
	})
	return lines, nil
}

func (r *CartRepo) InsertCartLine(ctx context.Context, line model.CartItem) error {
	linesKey := generateCartLineKey(line.UserID)

	raw, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal cart line: %w", err)
	}
	if err := r.CartCache.HSet(ctx, linesKey, line.CartItemID, raw).Err(); err != nil {
		return fmt.Errorf("failed to insert cart line: %w", err)
	}
	return nil
}

// 寫回前檢查欄位仍存在, 避免蓋掉已被刪除的項目
const setIfExistsScript = `
	local key = KEYS[1]
	local field = ARGV[1]

	if redis.call('HEXISTS', key, field) == 0 then
		return -1
	end
	redis.call('HSET', key, field, ARGV[2])
	return 1
`

// UpdateCartLineQuantity 更新數量
// 數量歸零直接刪除整條, 購物車不允許quantity=0的項目存在
// JSON一律在Go端序列化後整條寫回, 不在redis內改寫文件
// (cjson會把空陣列重編碼成物件, 破壞快照格式)
func (r *CartRepo) UpdateCartLineQuantity(ctx context.Context, userID int, cartItemID string, quantity int) error {
	linesKey := generateCartLineKey(userID)

	if quantity <= 0 {
		return r.DeleteCartLine(ctx, userID, cartItemID)
	}

	raw, err := r.CartCache.HGet(ctx, linesKey, cartItemID).Result()
	if err == redis.Nil {
		return fmt.Errorf("%w: %s", repository.ErrCartLineNotFound, cartItemID)
	}
	if err != nil {
		return fmt.Errorf("failed to load cart line: %w", err)
	}

	var line model.CartItem
	if err := json.Unmarshal([]byte(raw), &line); err != nil {
		return fmt.Errorf("invalid cart line payload: %w", err)
	}
	line.Quantity = quantity

	value, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal cart line: %w", err)
	}

	result, err := r.CartCache.Eval(ctx, setIfExistsScript, []string{linesKey}, cartItemID, value).Result()
	if err != nil {
		return fmt.Errorf("failed to update cart line quantity: %w", err)
	}

	switch v := result.(type) {
	case int64:
		if v == -1 {
			return fmt.Errorf("%w: %s", repository.ErrCartLineNotFound, cartItemID)
		}
		return nil
	default:
		return fmt.Errorf("unexpected result type: %T", result)
	}
}

// DeleteCartLine 刪除指定項目
func (r *CartRepo) DeleteCartLine(ctx context.Context, userID int, cartItemID string) error {
	linesKey := generateCartLineKey(userID)

	removed, err := r.CartCache.HDel(ctx, linesKey, cartItemID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", repository.ErrCartLineNotFound, cartItemID)
	}
	return nil
}

// ClearCart 清空購物車
func (r *CartRepo) ClearCart(ctx context.Context, userID int) error {
	linesKey := generateCartLineKey(userID)

	if err := r.CartCache.Del(ctx, linesKey).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

var _ repository.CartRepository = (*CartRepo)(nil)
