package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// 菜單資料由啟動時載入的靜態JSON提供, 載入後不可變
type MenuSection struct {
	Name  string     `json:"name"`
	Image string     `json:"image"`
	Items []MenuItem `json:"items"`
}

func (s MenuSection) ID() string {
	return s.Name
}

// Snapshot 深拷貝整個分區
func (s MenuSection) Snapshot() MenuSection {
	cp := s
	cp.Items = make([]MenuItem, len(s.Items))
	for i, item := range s.Items {
		cp.Items[i] = item.Snapshot()
	}
	return cp
}

type MenuItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Ingredients []Ingredient    `json:"ingredients"`
	Options     []Option        `json:"options"`
}

type Ingredient struct {
	Name string `json:"name"`
}

type Option struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

// ID 以名稱作為唯一識別
func (m MenuItem) ID() string {
	return m.Name
}

// SelectedOptions 回傳已勾選的選項名稱, 排序後輸出
func (m MenuItem) SelectedOptions() []string {
	names := make([]string, 0, len(m.Options))
	for _, opt := range m.Options {
		if opt.Value {
			names = append(names, opt.Name)
		}
	}
	sort.Strings(names)
	return names
}

// SelectionKey 合併購物車項目用的等值鍵
// 同一商品 + 相同已選選項集合 視為同一條購物車項目
// 選項順序與未勾選選項不影響結果
// 各段引號跳脫後才串接, 名稱含分隔符不會撞鍵
func (m MenuItem) SelectionKey() string {
	parts := make([]string, 0, len(m.Options)+1)
	parts = append(parts, strconv.Quote(m.ID()))
	for _, name := range m.SelectedOptions() {
		parts = append(parts, strconv.Quote(name))
	}
	return strings.Join(parts, "|")
}

// Snapshot 深拷貝, 讓購物車/訂單保存加入當下的狀態
func (m MenuItem) Snapshot() MenuItem {
	cp := m
	cp.Ingredients = make([]Ingredient, len(m.Ingredients))
	copy(cp.Ingredients, m.Ingredients)
	cp.Options = make([]Option, len(m.Options))
	copy(cp.Options, m.Options)
	return cp
}
