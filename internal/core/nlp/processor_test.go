package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
)

func strPtr(s string) *string { return &s }

// TestDetectIntentPriorityRemove remove 關鍵詞優先於 add 判斷
func TestDetectIntentPriorityRemove(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	intent, confidence := p.DetectIntent("I would like to remove the coffee")
	assert.Equal(t, IntentRemove, intent)
	assert.Equal(t, 0.95, confidence)
}

// TestDetectIntentAdd 常見點餐語句判為 add
func TestDetectIntentAdd(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	for _, text := range []string{
		"I want a coffee",
		"can I get two donuts",
		"add a pumpkin spice latte",
	} {
		intent, _ := p.DetectIntent(text)
		assert.Equal(t, IntentAdd, intent, "text: %s", text)
	}
}

// TestDetectIntentNegatedAddSkipsPriority "don't want" 不走 add 的優先判斷
func TestDetectIntentNegatedAddSkipsPriority(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	_, confidence := p.DetectIntent("I don't want the donut")
	assert.Less(t, confidence, 0.9)
}

// TestDetectIntentConfirm 確認語句
func TestDetectIntentConfirm(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	intent, confidence := p.DetectIntent("yes that's right")
	assert.Equal(t, IntentConfirm, intent)
	assert.Equal(t, 0.85, confidence)
}

// TestDetectIntentUnknown 無法判斷的語句回傳 unknown
func TestDetectIntentUnknown(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	intent, _ := p.DetectIntent("blue elephants dance")
	assert.Equal(t, IntentUnknown, intent)
}

// TestExtractQuantity 數字詞與阿拉伯數字
func TestExtractQuantity(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	assert.Equal(t, 2, p.ExtractQuantity("two coffees please"))
	assert.Equal(t, 5, p.ExtractQuantity("give me 5 donuts"))
	assert.Equal(t, 1, p.ExtractQuantity("a coffee"))
}

// TestExtractSize 口語尺寸對照，"regular" 在對話層映射到 medium
func TestExtractSize(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	assert.Equal(t, "large", p.ExtractSize("a VENTI latte"))
	assert.Equal(t, "medium", p.ExtractSize("just a regular one"))
	assert.Equal(t, "", p.ExtractSize("a latte"))
}

// TestExtractMenuItem 名稱與別名比對
func TestExtractMenuItem(t *testing.T) {
	p := NewProcessor(menu.Get("small"))

	item := p.ExtractMenuItem("I'll have a psl")
	require.NotNil(t, item)
	assert.Equal(t, "COF002", item.SKU)

	assert.Nil(t, p.ExtractMenuItem("a cheeseburger"))
}

// TestProcessCartOperationAdd add 意圖產生待加入的品項
func TestProcessCartOperationAdd(t *testing.T) {
	p := NewProcessor(menu.Get("small"))
	c := cart.New()

	result := p.ProcessCartOperation("I want two large black coffees", c)

	require.True(t, result.Success)
	assert.Equal(t, "add", result.Operation)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "COF001", result.Items[0].SKU)
	assert.Equal(t, 2, result.Items[0].Quantity)
	require.NotNil(t, result.Items[0].Size)
	assert.Equal(t, "large", *result.Items[0].Size)
	assert.InDelta(t, 2.39, result.Items[0].Price, 1e-9)
}

// TestProcessCartOperationRemovePartial 移除部分數量
func TestProcessCartOperationRemovePartial(t *testing.T) {
	p := NewProcessor(menu.Get("small"))
	c := cart.New()
	c.AddItem(cart.Item{SKU: "COF001", Name: "Regular Brewed Coffee", Quantity: 3, Size: strPtr("medium"), Price: 2.09})

	result := p.ProcessCartOperation("remove one coffee", c)

	require.True(t, result.Success)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.InDelta(t, 4.18, c.Total, 1e-9)
}

// TestProcessCartOperationRemoveAll "remove all" 清掉所有同名品項
func TestProcessCartOperationRemoveAll(t *testing.T) {
	p := NewProcessor(menu.Get("small"))
	c := cart.New()
	c.AddItem(cart.Item{SKU: "COF001", Name: "Regular Brewed Coffee", Quantity: 1, Size: strPtr("small"), Price: 1.79})
	c.AddItem(cart.Item{SKU: "COF001", Name: "Regular Brewed Coffee", Quantity: 2, Size: strPtr("large"), Price: 2.39})
	c.AddItem(cart.Item{SKU: "DON002", Name: "Chocolate Iced Doughnut", Quantity: 1, Price: 1.09})

	result := p.ProcessCartOperation("remove all the coffee", c)

	require.True(t, result.Success)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "DON002", c.Items[0].SKU)
	assert.InDelta(t, 1.09, c.Total, 1e-9)
}

// TestProcessCartOperationKeepOnlyOne "just keep one" 保留一份
func TestProcessCartOperationKeepOnlyOne(t *testing.T) {
	p := NewProcessor(menu.Get("small"))
	c := cart.New()
	c.AddItem(cart.Item{SKU: "DON003", Name: "Raspberry Filled Doughnut", Quantity: 4, Price: 1.09})

	result := p.ProcessCartOperation("just keep one raspberry donut, remove the rest", c)

	require.True(t, result.Success)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.InDelta(t, 1.09, c.Total, 1e-9)
}

// TestProcessCartOperationRemoveMissing 購物車裡沒有的品項
func TestProcessCartOperationRemoveMissing(t *testing.T) {
	p := NewProcessor(menu.Get("small"))
	c := cart.New()

	result := p.ProcessCartOperation("remove the psl", c)

	assert.False(t, result.Success)
	assert.Equal(t, "remove", result.Operation)
}

// TestProcessCartOperationQuery 查詢回覆訂單摘要
func TestProcessCartOperationQuery(t *testing.T) {
	p := NewProcessor(menu.Get("small"))
	c := cart.New()
	c.AddItem(cart.Item{SKU: "DON002", Name: "Chocolate Iced Doughnut", Quantity: 2, Price: 1.09})

	result := p.ProcessCartOperation("what's in my cart?", c)

	require.True(t, result.Success)
	assert.Equal(t, "query", result.Operation)
	assert.Contains(t, result.Message, "2x Chocolate Iced Doughnut")
	assert.Contains(t, result.Message, "$2.18")

	empty := p.ProcessCartOperation("show me my cart", cart.New())
	assert.Equal(t, "Your cart is empty", empty.Message)
}
