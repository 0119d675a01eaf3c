package pricing

import (
	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/shopspring/decimal"
)

const currencySymbol = "$"

// LineTotal 單條項目金額 = 單價 * 數量
// 全程使用decimal精確運算, 不用浮點數累加
func LineTotal(line model.CartItem) decimal.Decimal {
	return line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartTotal 購物車總金額, 加總順序不影響結果
func CartTotal(lines []model.CartItem) decimal.Decimal {
	amount := decimal.NewFromInt(0)
	for _, line := range lines {
		amount = amount.Add(LineTotal(line))
	}
	return amount
}

// Format 輸出貨幣字串, 固定兩位小數
// 四捨五入只發生在格式化當下, 不回寫原值
func Format(amount decimal.Decimal) string {
	return currencySymbol + amount.StringFixed(2)
}
