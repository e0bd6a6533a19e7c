package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/core/menu"
)

// TestParseAgentTextFullOrder 助理複述整份訂單
func TestParseAgentTextFullOrder(t *testing.T) {
	p := NewAgentParser(menu.Get("small"))

	items, isRemoval := p.ParseAgentText(
		"So I'm updating your order to two medium regular brewed coffees and one pumpkin spice latte.")

	assert.False(t, isRemoval)
	require.Len(t, items, 2)
	assert.Equal(t, "COF001", items[0].SKU)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "COF002", items[1].SKU)
	assert.Equal(t, 1, items[1].Quantity)
}

// TestParseAgentTextRemovalWithFinalState 移除語句只保留最終狀態的品項
func TestParseAgentTextRemovalWithFinalState(t *testing.T) {
	p := NewAgentParser(menu.Get("small"))

	items, isRemoval := p.ParseAgentText(
		"I've removed the large Regular Brewed Coffee from your order, so now you just have a Pumpkin Spice Latte.")

	assert.True(t, isRemoval)
	require.Len(t, items, 1)
	assert.Equal(t, "COF002", items[0].SKU)
	assert.Equal(t, 1, items[0].Quantity)
}

// TestParseAgentTextFinalStateVariants 各種最終狀態語彙
func TestParseAgentTextFinalStateVariants(t *testing.T) {
	p := NewAgentParser(menu.Get("small"))

	for _, text := range []string{
		"Your order is now a chocolate donut.",
		"That leaves you with a chocolate donut.",
		"You now have a chocolate donut.",
	} {
		items, _ := p.ParseAgentText(text)
		require.Len(t, items, 1, "text: %s", text)
		assert.Equal(t, "DON002", items[0].SKU, "text: %s", text)
	}
}

// TestIsFinalState 最終狀態偵測
func TestIsFinalState(t *testing.T) {
	p := NewAgentParser(menu.Get("small"))

	assert.True(t, p.IsFinalState("Now you just have one donut."))
	assert.False(t, p.IsFinalState("Added a donut to your order."))
}

// TestParseAgentTextNoItems 沒有任何品項時回傳空列表
func TestParseAgentTextNoItems(t *testing.T) {
	p := NewAgentParser(menu.Get("small"))

	items, isRemoval := p.ParseAgentText("Anything else I can get you?")
	assert.Empty(t, items)
	assert.False(t, isRemoval)
}
