package cart

import (
	"math"
	"sort"
	"strings"
)

// Item 購物車中的單一品項。
// Size 為 nil 代表該品項沒有尺寸概念（JSON 輸出為 null）。
type Item struct {
	SKU       string   `json:"sku"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Size      *string  `json:"size"`
	Modifiers []string `json:"modifiers"`
	Price     float64  `json:"price"`
}

// Key 品項身分鍵：SKU + 尺寸 + 排序後的配料集合。
// 合併與相等判斷一律以此鍵為準，與切片順序無關。
func (i *Item) Key() string {
	mods := make([]string, len(i.Modifiers))
	copy(mods, i.Modifiers)
	sort.Strings(mods)
	return i.SKU + "|" + i.sizeKey() + "|" + strings.Join(mods, ",")
}

func (i *Item) sizeKey() string {
	if i.Size == nil {
		return "<none>"
	}
	return *i.Size
}

// Cart 購物車
type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// New 建立空購物車
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem 加入品項並累計總價
func (c *Cart) AddItem(item Item) {
	if item.Modifiers == nil {
		item.Modifiers = []string{}
	}
	c.Items = append(c.Items, item)
	c.Total += item.Price * float64(item.Quantity)
}

// RemoveItem 移除指定位置的品項，索引越界時不動作
func (c *Cart) RemoveItem(index int) {
	if index < 0 || index >= len(c.Items) {
		return
	}
	item := c.Items[index]
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	c.Total -= item.Price * float64(item.Quantity)
}

// UpdateItem 替換指定位置的品項並調整總價
func (c *Cart) UpdateItem(index int, item Item) {
	if index < 0 || index >= len(c.Items) {
		return
	}
	if item.Modifiers == nil {
		item.Modifiers = []string{}
	}
	old := c.Items[index]
	c.Total -= old.Price * float64(old.Quantity)
	c.Items[index] = item
	c.Total += item.Price * float64(item.Quantity)
}

// MergeDuplicates 合併身分鍵相同的品項。
// 保留第一次出現的順序，數量相加後重算總價；操作具冪等性。
func (c *Cart) MergeDuplicates() {
	merged := make(map[string]*Item, len(c.Items))
	order := make([]string, 0, len(c.Items))

	for i := range c.Items {
		item := c.Items[i]
		key := item.Key()
		if existing, ok := merged[key]; ok {
			existing.Quantity += item.Quantity
			continue
		}
		clone := item
		clone.Modifiers = append([]string{}, item.Modifiers...)
		merged[key] = &clone
		order = append(order, key)
	}

	items := make([]Item, 0, len(order))
	for _, key := range order {
		items = append(items, *merged[key])
	}
	c.Items = items
	c.recomputeTotal()
}

func (c *Cart) recomputeTotal() {
	total := 0.0
	for i := range c.Items {
		total += c.Items[i].Price * float64(c.Items[i].Quantity)
	}
	c.Total = total
}

// Snapshot 對外輸出用的購物車快照，僅總價四捨五入到小數兩位
type Snapshot struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// Snapshot 產生序列化用快照。單價保留原值，不做中間捨入。
func (c *Cart) Snapshot() Snapshot {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].Modifiers == nil {
			items[i].Modifiers = []string{}
		}
	}
	return Snapshot{
		Items: items,
		Total: math.Round(c.Total*100) / 100,
	}
}
