package session

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/core/nlp"
	"cart-normalizer/internal/pkg/common"
)

// ConfirmedOrder 已確認訂單的歷史紀錄
type ConfirmedOrder struct {
	OrderID   string      `json:"order_id"`
	Timestamp string      `json:"timestamp"`
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
}

// VoiceSession 單一點餐會話：購物車、對話處理器與訂單歷史。
// 所有操作都以互斥鎖保護，同一會話可被多個請求併發存取。
type VoiceSession struct {
	ID       string
	MenuName string

	mu          sync.Mutex
	menu        *menu.Menu
	normalizer  *cart.Normalizer
	processor   *nlp.Processor
	agentParser *nlp.AgentParser
	cart        *cart.Cart
	history     []ConfirmedOrder
	lastActive  time.Time
}

// NewVoiceSession 建立點餐會話
func NewVoiceSession(id, menuName string) *VoiceSession {
	m := menu.Get(menuName)
	return &VoiceSession{
		ID:          id,
		MenuName:    menuName,
		menu:        m,
		normalizer:  cart.NewNormalizer(m),
		processor:   nlp.NewProcessor(m),
		agentParser: nlp.NewAgentParser(m),
		cart:        cart.New(),
		history:     []ConfirmedOrder{},
		lastActive:  time.Now(),
	}
}

// Menu 會話使用的菜單
func (s *VoiceSession) Menu() *menu.Menu {
	return s.menu
}

// ProcessTranscript 處理使用者語句：依意圖更新購物車並回傳訊息
func (s *VoiceSession) ProcessTranscript(text string) (string, cart.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	intent, confidence := s.processor.DetectIntent(text)
	common.LogDebug("偵測語句意圖",
		zap.String("會話", s.ID),
		zap.String("意圖", string(intent)),
		zap.Float64("信心值", confidence))

	var message string
	switch intent {
	case nlp.IntentRemove:
		result := s.processor.ProcessCartOperation(text, s.cart)
		message = result.Message
	case nlp.IntentAdd:
		s.mergeParsedOrder(text)
		message = "Item added successfully"
	case nlp.IntentQuery:
		result := s.processor.ProcessCartOperation(text, s.cart)
		message = result.Message
	case nlp.IntentConfirm:
		message = "Order confirmed"
	case nlp.IntentCancel:
		s.cart = cart.New()
		message = "Order cancelled"
	default:
		// 聽不懂就當成點餐試著解析
		s.mergeParsedOrder(text)
		message = "Item processed"
	}

	return message, s.cart.Snapshot()
}

// mergeParsedOrder 解析語句中的品項並併入現有購物車，
// 身分鍵相同的品項累加數量而非重複出現。呼叫端須持有鎖。
func (s *VoiceSession) mergeParsedOrder(text string) {
	parsed := s.normalizer.ParseOrder(text)
	for _, item := range parsed.Items {
		idx := -1
		for i := range s.cart.Items {
			if s.cart.Items[i].Key() == item.Key() {
				idx = i
				break
			}
		}
		if idx >= 0 {
			entry := s.cart.Items[idx]
			entry.Quantity += item.Quantity
			s.cart.UpdateItem(idx, entry)
			continue
		}
		s.cart.AddItem(item)
	}
}

// ProcessAgentText 處理語音助理的回覆。
// 助理複述「目前只剩…」的最終狀態時，整台購物車以其內容取代。
func (s *VoiceSession) ProcessAgentText(text string) cart.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	items, isRemoval := s.agentParser.ParseAgentText(text)

	lower := strings.ToLower(text)
	if isRemoval && (strings.Contains(lower, "now you just have") || strings.Contains(lower, "now you have")) {
		replaced := cart.New()
		for _, item := range items {
			replaced.AddItem(item)
		}
		s.cart = replaced
		common.LogInfo("依助理最終狀態重建購物車",
			zap.String("會話", s.ID),
			zap.Int("品項數", len(items)))
	}

	return s.cart.Snapshot()
}

// CartSnapshot 目前購物車狀態
func (s *VoiceSession) CartSnapshot() cart.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

// ClearCart 清空購物車
func (s *VoiceSession) ClearCart() cart.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	s.cart = cart.New()
	return s.cart.Snapshot()
}

// ConfirmOrder 確認目前訂單：寫入歷史並清空購物車
func (s *VoiceSession) ConfirmOrder() (*ConfirmedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if len(s.cart.Items) == 0 {
		return nil, common.NewValidationError("cart is empty")
	}

	snapshot := s.cart.Snapshot()
	order := ConfirmedOrder{
		OrderID:   common.GenerateUUID()[:8],
		Timestamp: time.Now().Format(time.RFC3339),
		Items:     snapshot.Items,
		Total:     snapshot.Total,
		Status:    "confirmed",
	}
	s.history = append(s.history, order)
	s.cart = cart.New()

	common.LogInfo("訂單已確認",
		zap.String("會話", s.ID),
		zap.String("訂單編號", order.OrderID),
		zap.Float64("總價", order.Total))

	return &order, nil
}

// UpdateItemQuantity 調整指定品項數量，數量歸零即移除
func (s *VoiceSession) UpdateItemQuantity(index, quantity int) (cart.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if index < 0 || index >= len(s.cart.Items) {
		return s.cart.Snapshot(), common.NewValidationError("invalid item index")
	}
	if quantity <= 0 {
		s.cart.RemoveItem(index)
		return s.cart.Snapshot(), nil
	}
	entry := s.cart.Items[index]
	entry.Quantity = quantity
	s.cart.UpdateItem(index, entry)
	return s.cart.Snapshot(), nil
}

// History 已確認的訂單歷史
func (s *VoiceSession) History() []ConfirmedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ConfirmedOrder, len(s.history))
	copy(out, s.history)
	return out
}

// LastActive 最後一次操作的時間
func (s *VoiceSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
