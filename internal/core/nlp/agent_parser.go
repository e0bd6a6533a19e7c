package nlp

import (
	"strings"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
)

// 語音助理回覆中代表「移除」的語彙
var removalPhrases = []string{
	"removed", "removing", "taking out", "now you just have",
	"only have", "took off", "deleted",
}

// 代表「以下是訂單最終狀態」的語彙，出現時只解析其後的文字
var finalStatePhrases = []string{
	"now you just have", "now you have", "your order is now",
	"you only have", "that leaves you with",
}

// AgentParser 解析語音助理的回覆文字，從中還原訂單內容。
// 助理的回覆經常複述整份訂單，是比使用者語句更可靠的購物車來源。
type AgentParser struct {
	normalizer *cart.Normalizer
}

// NewAgentParser 建立助理回覆解析器
func NewAgentParser(m *menu.Menu) *AgentParser {
	return &AgentParser{normalizer: cart.NewNormalizer(m)}
}

// ParseAgentText 解析助理回覆，回傳品項與是否為移除語句。
// 若回覆含最終狀態語彙，只取語彙之後的片段解析，視為完整訂單替換。
func (p *AgentParser) ParseAgentText(text string) (items []cart.Item, isRemoval bool) {
	lower := strings.ToLower(text)

	for _, phrase := range removalPhrases {
		if strings.Contains(lower, phrase) {
			isRemoval = true
			break
		}
	}

	for _, phrase := range finalStatePhrases {
		if idx := strings.Index(lower, phrase); idx != -1 {
			remaining := lower[idx+len(phrase):]
			return p.normalizer.ParseOrder(remaining).Items, isRemoval
		}
	}

	return p.normalizer.ParseOrder(lower).Items, isRemoval
}

// IsFinalState 回覆是否描述訂單的最終狀態
func (p *AgentParser) IsFinalState(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range finalStatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
