package model

// Favorite 我的最愛標記, 與購物車無關
// 判斷是否收藏沿用與購物車合併相同的商品識別規則 (名稱衍生ID)
type Favorite struct {
	UserID int    `gorm:"primaryKey" json:"user_id"`
	ItemID string `gorm:"primaryKey;type:varchar(255)" json:"item_id"`
	BaseModel
}
