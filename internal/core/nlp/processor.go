package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
)

// Intent 使用者語句的意圖分類
type Intent string

const (
	IntentAdd     Intent = "add"
	IntentRemove  Intent = "remove"
	IntentModify  Intent = "modify"
	IntentQuery   Intent = "query"
	IntentConfirm Intent = "confirm"
	IntentCancel  Intent = "cancel"
	IntentUnknown Intent = "unknown"
)

// 低於此信心值一律視為 unknown
const minIntentConfidence = 0.3

var (
	addPatterns = compileAll(
		`\b(add|get|give|want|like|need|order|have|take)\b`,
		`\b(i'd like|i would like|i want|i need|i'll take|i'll have)\b`,
		`\b(can i get|could i get|may i have)\b`,
	)
	removePatterns = compileAll(
		`\b(remove|delete|take out|take off|don't want|don't need|cancel|scratch)\b`,
		`\b(no|not|without)\b`,
		`\b(change my mind|never mind|forget)\b`,
	)
	modifyPatterns = compileAll(
		`\b(change|modify|update|switch|replace|instead)\b`,
		`\b(make it|make that)\b`,
	)
	queryPatterns = compileAll(
		`\b(what|how much|how many|total|price|cost)\b`,
		`\b(do i have|what's in|show me)\b`,
	)
	confirmPatterns = compileAll(
		`\b(yes|yeah|yep|correct|right|that's right|sounds good|perfect)\b`,
		`\b(confirm|proceed|go ahead|place order)\b`,
		`\b(confirm my order|confirm the order|place the order|finalize|pay)\b`,
	)
	cancelPatterns = compileAll(
		`\b(cancel|stop|abort|never mind|forget it)\b`,
	)

	digitPattern = regexp.MustCompile(`\b(\d+)\b`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

var quantityWords = []struct {
	word string
	num  int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
}

// 口語尺寸對照，與購物車引擎的尺寸同義詞表互相獨立
var spokenSizes = []struct {
	keyword string
	size    string
}{
	{"small", "small"},
	{"medium", "medium"},
	{"large", "large"},
	{"regular", "medium"},
	{"venti", "large"},
	{"grande", "large"},
}

// OperationResult 一次購物車操作的結果
type OperationResult struct {
	Operation string      `json:"operation"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Items     []cart.Item `json:"items"`
}

// Processor 語句意圖偵測與購物車操作處理
type Processor struct {
	menu *menu.Menu
}

// NewProcessor 建立意圖處理器
func NewProcessor(m *menu.Menu) *Processor {
	return &Processor{menu: m}
}

// DetectIntent 偵測語句意圖並回傳信心值。
// 先做關鍵詞優先判斷，避免 "i would like to remove" 被誤判為 add。
func (p *Processor) DetectIntent(text string) (Intent, float64) {
	lower := strings.ToLower(text)

	if containsAny(lower, "remove", "delete", "take out", "take off", "don't want", "don't need", "cancel", "scratch") {
		if containsAny(lower, "remove", "delete", "take out") {
			return IntentRemove, 0.95
		}
	}

	if containsAny(lower, "add", "get", "want", "need", "order", "have", "take") {
		if !containsAny(lower, "don't want", "don't need", "don't have") {
			return IntentAdd, 0.90
		}
	}

	if containsAny(lower, "confirm", "yes", "yeah", "correct", "right", "that's right") {
		return IntentConfirm, 0.85
	}

	best := IntentUnknown
	bestScore := 0.0
	for _, candidate := range []struct {
		intent   Intent
		patterns []*regexp.Regexp
	}{
		{IntentAdd, addPatterns},
		{IntentRemove, removePatterns},
		{IntentModify, modifyPatterns},
		{IntentQuery, queryPatterns},
		{IntentConfirm, confirmPatterns},
		{IntentCancel, cancelPatterns},
	} {
		score := intentScore(lower, candidate.patterns)
		if score > bestScore {
			best = candidate.intent
			bestScore = score
		}
	}

	if bestScore < minIntentConfidence {
		return IntentUnknown, bestScore
	}
	return best, bestScore
}

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func intentScore(text string, patterns []*regexp.Regexp) float64 {
	if len(patterns) == 0 {
		return 0.0
	}
	matches := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			matches++
		}
	}
	return float64(matches) / float64(len(patterns))
}

// ExtractQuantity 從語句取出數量，沒講就是 1
func (p *Processor) ExtractQuantity(text string) int {
	lower := strings.ToLower(text)
	for _, q := range quantityWords {
		if strings.Contains(lower, q.word) {
			return q.num
		}
	}
	if m := digitPattern.FindString(text); m != "" {
		q, _ := strconv.Atoi(m)
		return q
	}
	return 1
}

// ExtractSize 從語句取出口語尺寸，沒講回傳空字串
func (p *Processor) ExtractSize(text string) string {
	lower := strings.ToLower(text)
	for _, s := range spokenSizes {
		if strings.Contains(lower, s.keyword) {
			return s.size
		}
	}
	return ""
}

// ExtractMenuItem 在語句中找第一個符合的菜單品項
func (p *Processor) ExtractMenuItem(text string) *menu.MenuItem {
	lower := strings.ToLower(text)
	for i := range p.menu.Items {
		item := &p.menu.Items[i]
		if strings.Contains(lower, strings.ToLower(item.Name)) {
			return item
		}
		for _, alias := range item.Aliases {
			if strings.Contains(lower, strings.ToLower(alias)) {
				return item
			}
		}
	}
	return nil
}

// ProcessCartOperation 依意圖對購物車執行對應操作
func (p *Processor) ProcessCartOperation(text string, c *cart.Cart) OperationResult {
	intent, _ := p.DetectIntent(text)

	switch intent {
	case IntentRemove:
		return p.processRemove(text, c)
	case IntentAdd:
		return p.processAdd(text)
	case IntentModify:
		return OperationResult{Operation: "modify", Success: false, Message: "Modify operation not yet implemented", Items: []cart.Item{}}
	case IntentQuery:
		return p.processQuery(c)
	case IntentConfirm:
		return OperationResult{Operation: "confirm", Success: true, Message: "Order confirmed", Items: []cart.Item{}}
	case IntentCancel:
		return OperationResult{Operation: "cancel", Success: true, Message: "Order cancelled", Items: []cart.Item{}}
	default:
		return OperationResult{Operation: "unknown", Success: false, Message: "Could not understand: " + text, Items: []cart.Item{}}
	}
}

func (p *Processor) processAdd(text string) OperationResult {
	item := p.ExtractMenuItem(text)
	if item == nil {
		return OperationResult{Operation: "add", Success: false, Message: "Could not identify the menu item", Items: []cart.Item{}}
	}

	quantity := p.ExtractQuantity(text)
	size := p.ExtractSize(text)
	if size == "" {
		size = "medium"
	}

	var sizePtr *string
	price := item.BasePrice
	if item.HasSizes() {
		sizePtr = &size
		if delta, ok := item.SizeVariations[size]; ok {
			price += delta
		}
	}

	return OperationResult{
		Operation: "add",
		Success:   true,
		Message:   fmt.Sprintf("Added %dx %s", quantity, item.Name),
		Items: []cart.Item{{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  quantity,
			Size:      sizePtr,
			Modifiers: []string{},
			Price:     price,
		}},
	}
}

func (p *Processor) processRemove(text string, c *cart.Cart) OperationResult {
	lower := strings.ToLower(text)

	// "remove all X" 移除所有同名品項
	if containsAny(lower, "remove all", "take out all", "delete all") {
		if item := p.ExtractMenuItem(text); item != nil {
			if removeAllByName(c, item.Name) > 0 {
				return OperationResult{Operation: "remove", Success: true, Message: "Removed all " + item.Name, Items: []cart.Item{}}
			}
		}
	}

	// "just keep one" 只保留一份
	if containsAny(lower, "just keep", "keep only", "only keep") {
		if item := p.ExtractMenuItem(text); item != nil {
			if keepOneByName(c, item.Name) {
				return OperationResult{Operation: "remove", Success: true, Message: "Kept only 1 " + item.Name, Items: []cart.Item{}}
			}
		}
	}

	item := p.ExtractMenuItem(text)
	if item == nil {
		return OperationResult{Operation: "remove", Success: false, Message: "Could not identify the menu item to remove", Items: []cart.Item{}}
	}

	quantity := p.ExtractQuantity(text)
	size := p.ExtractSize(text)

	removed := false
	for i := 0; i < len(c.Items); i++ {
		entry := c.Items[i]
		if entry.Name != item.Name {
			continue
		}
		if size != "" && (entry.Size == nil || *entry.Size != size) {
			continue
		}

		if entry.Quantity > quantity {
			entry.Quantity -= quantity
			c.UpdateItem(i, entry)
			return OperationResult{Operation: "remove", Success: true, Message: fmt.Sprintf("Removed %dx %s", quantity, item.Name), Items: []cart.Item{}}
		}

		c.RemoveItem(i)
		i--
		removed = true
	}

	if removed {
		return OperationResult{Operation: "remove", Success: true, Message: "Removed " + item.Name, Items: []cart.Item{}}
	}
	return OperationResult{Operation: "remove", Success: false, Message: item.Name + " not found in cart", Items: []cart.Item{}}
}

func (p *Processor) processQuery(c *cart.Cart) OperationResult {
	if len(c.Items) == 0 {
		return OperationResult{Operation: "query", Success: true, Message: "Your cart is empty", Items: []cart.Item{}}
	}

	summary := make([]string, 0, len(c.Items))
	for i := range c.Items {
		summary = append(summary, fmt.Sprintf("%dx %s", c.Items[i].Quantity, c.Items[i].Name))
	}
	message := fmt.Sprintf("Your order: %s. Total: $%.2f", strings.Join(summary, ", "), c.Total)
	return OperationResult{Operation: "query", Success: true, Message: message, Items: []cart.Item{}}
}

func removeAllByName(c *cart.Cart, name string) int {
	removed := 0
	for i := 0; i < len(c.Items); i++ {
		if c.Items[i].Name == name {
			c.RemoveItem(i)
			i--
			removed++
		}
	}
	return removed
}

func keepOneByName(c *cart.Cart, name string) bool {
	var first *cart.Item
	for i := 0; i < len(c.Items); i++ {
		if c.Items[i].Name != name {
			continue
		}
		if first == nil {
			clone := c.Items[i]
			first = &clone
		}
		c.RemoveItem(i)
		i--
	}
	if first == nil {
		return false
	}
	first.Quantity = 1
	c.AddItem(*first)
	return true
}
