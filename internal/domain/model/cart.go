package model

// CartItem 購物車的一條項目, 保存加入當下的商品快照
// Quantity 恆 >= 1, 數量歸零時整條刪除而不是留0
type CartItem struct {
	CartItemID string   `json:"cart_item_id"`
	UserID     int      `json:"user_id"`
	Item       MenuItem `json:"item"`
	Quantity   int      `json:"quantity"`
}

// SelectionKey 與 MenuItem.SelectionKey 相同規則
func (c CartItem) SelectionKey() string {
	return c.Item.SelectionKey()
}

type Cart struct {
	UserID int        `json:"user_id"`
	Items  []CartItem `json:"items"`
}
