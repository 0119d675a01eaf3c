package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 結帳狀態機: Open -> Finalizing -> Ordered (終態)
// 失敗時 Finalizing -> Open, 購物車保持原狀可重試
const (
	CheckoutStateOpen       uint32 = 0
	CheckoutStateFinalizing uint32 = 1
	CheckoutStateOrdered    uint32 = 2
)

// Order 下單時的不可變快照, 建立後不再隨菜單價格變動
type Order struct {
	OrderID      string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	UserID       int             `gorm:"not null;index" json:"user_id"`
	OrderItems   []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多，級聯刪除
	Amount       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	DeliveryInfo DeliveryInfo    `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_info"`
	PlacedAt     time.Time       `gorm:"not null" json:"placed_at"`
	BaseModel
}

// OrderItem 一條訂單明細, 價格與選項凍結在下單當下
type OrderItem struct {
	OrderID         string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	ItemID          string          `gorm:"primaryKey;type:varchar(255)" json:"item_id"`
	SelectedOptions string          `gorm:"primaryKey;type:varchar(255)" json:"selected_options"` // 已選選項, 逗號分隔
	ItemName        string          `gorm:"not null;type:varchar(100)" json:"item_name"`
	UnitPrice       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"unit_price"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Amount          decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	BaseModel
}

type DeliveryInfo struct {
	Name    string `gorm:"type:varchar(100)" json:"name"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Notes   string `gorm:"type:text" json:"notes"`
}
