package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/core/menu"
)

// TestNormalizeText 標點移除、空白壓縮、轉小寫與修正語彙
func TestNormalizeText(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	assert.Equal(t, "a coffee please", n.NormalizeText("A Coffee,   please!!"))
	assert.Equal(t, "x-large don't", n.NormalizeText("X-Large don't"))
	assert.Equal(t, "medium", n.NormalizeText("actually, make that medium"))
}

// TestParseOrderEmptyInput 空白或無法辨識的輸入回傳空購物車
func TestParseOrderEmptyInput(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	for _, text := range []string{"", "   ", "nothing on the menu here"} {
		c := n.ParseOrder(text)
		require.NotNil(t, c)
		assert.Empty(t, c.Items)
		assert.Equal(t, 0.0, c.Total)
	}
}

// TestParseOrderCoffeeScenario 數量詞、尺寸字與配料同義詞的完整解析
func TestParseOrderCoffeeScenario(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	c := n.ParseOrder("two medium regular brewed coffees with cream")

	require.Len(t, c.Items, 1)
	item := c.Items[0]
	assert.Equal(t, "COF001", item.SKU)
	assert.Equal(t, 2, item.Quantity)
	require.NotNil(t, item.Size)
	assert.Equal(t, "medium", *item.Size)
	assert.Equal(t, []string{"cream"}, item.Modifiers)
	assert.InDelta(t, 2.09, item.Price, 1e-9)
	assert.InDelta(t, 4.18, c.Total, 1e-9)
}

// TestParseOrderDonutScenario 配料只綁定於自己的提及，不外溢到後面的品項
func TestParseOrderDonutScenario(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	c := n.ParseOrder("a chocolate donut with sprinkles and a raspberry donut")

	require.Len(t, c.Items, 2)

	choc := c.Items[0]
	assert.Equal(t, "DON002", choc.SKU)
	assert.Equal(t, 1, choc.Quantity)
	assert.Nil(t, choc.Size)
	assert.Equal(t, []string{"sprinkles"}, choc.Modifiers)
	assert.InDelta(t, 1.09, choc.Price, 1e-9)

	rasp := c.Items[1]
	assert.Equal(t, "DON003", rasp.SKU)
	assert.Empty(t, rasp.Modifiers)
	assert.NotNil(t, rasp.Modifiers)

	assert.InDelta(t, 2.18, c.Total, 1e-9)
}

// TestParseOrderOverlapLongestAliasWins 重疊提及只保留別名最長者
func TestParseOrderOverlapLongestAliasWins(t *testing.T) {
	n := NewNormalizer(menu.Get("large"))

	c := n.ParseOrder("one pumpkin spice latte")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "COF002", c.Items[0].SKU)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

// TestParseOrderDefaultSize 沒講尺寸時套用分類預設
func TestParseOrderDefaultSize(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	c := n.ParseOrder("a psl please")

	require.Len(t, c.Items, 1)
	require.NotNil(t, c.Items[0].Size)
	assert.Equal(t, "medium", *c.Items[0].Size)
	assert.InDelta(t, 5.09, c.Items[0].Price, 1e-9)
}

// TestParseOrderSizeSynonyms 尺寸縮寫映射到標準尺寸
func TestParseOrderSizeSynonyms(t *testing.T) {
	n := NewNormalizer(menu.Get("large"))

	c := n.ParseOrder("a venti latte")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "COF005", c.Items[0].SKU)
	require.NotNil(t, c.Items[0].Size)
	assert.Equal(t, "large", *c.Items[0].Size)
	assert.InDelta(t, 4.29, c.Items[0].Price, 1e-9)
}

// TestParseOrderDigitQuantity 阿拉伯數字也能當數量
func TestParseOrderDigitQuantity(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	c := n.ParseOrder("3 raspberry donuts")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "DON003", c.Items[0].SKU)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

// TestParseOrderMergesRepeatedMentions 同一品項多次提及會合併數量
func TestParseOrderMergesRepeatedMentions(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	c := n.ParseOrder("a raspberry donut and one raspberry donut")

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.InDelta(t, 2.18, c.Total, 1e-9)
}

// TestParseOrderPermutationInvariant 兩個不重疊品項交換順序，內容多重集合不變
func TestParseOrderPermutationInvariant(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	a := n.ParseOrder("a chocolate donut and two black coffees")
	b := n.ParseOrder("two black coffees and a chocolate donut")

	keysA := make(map[string]int)
	for _, item := range a.Items {
		keysA[item.Key()] += item.Quantity
	}
	keysB := make(map[string]int)
	for _, item := range b.Items {
		keysB[item.Key()] += item.Quantity
	}
	assert.Equal(t, keysA, keysB)
	assert.InDelta(t, a.Total, b.Total, 1e-9)
}

// TestParseOrderUnknownTokensIgnored 菜單外的詞不影響已辨識的品項
func TestParseOrderUnknownTokensIgnored(t *testing.T) {
	n := NewNormalizer(menu.Get("small"))

	c := n.ParseOrder("umm let me get a pumpkin donut and also fries")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "DON001", c.Items[0].SKU)
}

// TestAliasCollisionLastRegistrationWins 跨品項的別名衝突由後註冊者勝出
func TestAliasCollisionLastRegistrationWins(t *testing.T) {
	m := &menu.Menu{
		Name: "Collision Menu",
		Items: []menu.MenuItem{
			{SKU: "A1", Name: "First Bun", Category: "buns", BasePrice: 1.0, Aliases: []string{"bun"}},
			{SKU: "A2", Name: "Second Bun", Category: "buns", BasePrice: 2.0, Aliases: []string{"bun"}},
		},
	}
	n := NewNormalizer(m)

	c := n.ParseOrder("a bun")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "A2", c.Items[0].SKU)
}
