package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 外部語音服務客戶端，負責建立語音通話並取得加入連結
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建語音服務客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetHeader("X-API-Key", cfg.Speech.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Speech.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// CallResult 建立通話的結果
type CallResult struct {
	JoinURL string `json:"joinUrl"`
}

// CreateCall 建立一通語音通話，回傳加入連結。
// 系統提示詞帶入菜單與目前購物車摘要，讓語音助理照單點餐。
func (c *Client) CreateCall(ctx context.Context, m *menu.Menu, cartSummary string) (*CallResult, error) {
	if !c.config.Speech.Enabled {
		return nil, common.ErrSpeechServiceError
	}

	body := map[string]interface{}{
		"systemPrompt": BuildSystemPrompt(m, cartSummary),
		"temperature":  0.8,
		"voice":        c.config.Speech.Voice,
		"medium": map[string]interface{}{
			"serverWebSocket": map[string]interface{}{
				"inputSampleRate":    48000,
				"outputSampleRate":   48000,
				"clientBufferSizeMs": 30000,
			},
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.config.Speech.APIURL)

	if err != nil {
		return nil, fmt.Errorf("failed to create voice call: %w", err)
	}

	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("voice service returned error: %s", resp.String())
	}

	var result CallResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse voice service response: %w", err)
	}
	if result.JoinURL == "" {
		return nil, fmt.Errorf("no join url in voice service response")
	}

	common.LogInfo("建立語音通話",
		zap.String("菜單", m.Name))

	return &result, nil
}

// BuildSystemPrompt 組出語音助理的系統提示詞：點餐腳本、目前購物車與菜單
func BuildSystemPrompt(m *menu.Menu, cartSummary string) string {
	if cartSummary == "" {
		cartSummary = "The cart is currently empty."
	}

	var sb strings.Builder
	sb.WriteString(`You are a drive-thru order taker for a donut shop called "Dr. Donut". Local time is currently: `)
	sb.WriteString(time.Now().Format(time.RFC3339))
	sb.WriteString(`
The user is talking to you over voice on their phone, and your response will be read out loud with realistic text-to-speech (TTS) technology.

IMPORTANT: The current order in the cart is:
`)
	sb.WriteString(cartSummary)
	sb.WriteString(`

You MUST reference this cart when responding. If the user asks to remove something, check if it's actually in the cart above before saying it's not there.

When talking with the user, use the following script:
1. Take their order, acknowledging each item as it is ordered. If it's not clear which menu item the user is ordering, ask them to clarify.
   DO NOT add an item to the order unless it's one of the items on the menu below.
2. Once the order is complete, repeat back the order.
3. Total up the price of all ordered items and inform the user.
4. Ask the user to pull up to the drive thru window.

The menu of available items is as follows:

`)
	sb.WriteString(formatMenu(m))
	return sb.String()
}

// formatMenu 菜單的純文字版本，按分類分段
func formatMenu(m *menu.Menu) string {
	var sb strings.Builder
	currentCategory := ""
	for i := range m.Items {
		item := &m.Items[i]
		if item.Category != currentCategory {
			if currentCategory != "" {
				sb.WriteString("\n")
			}
			sb.WriteString("# " + strings.ToUpper(item.Category) + "\n")
			currentCategory = item.Category
		}
		sb.WriteString(fmt.Sprintf("%s $%.2f\n", strings.ToUpper(item.Name), item.BasePrice))
	}
	return sb.String()
}
