package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/infrastructure/config"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		Speech: config.SpeechConfig{
			Enabled: true,
			APIKey:  "test-key",
			APIURL:  url,
			Timeout: 5 * time.Second,
		},
	}
}

// TestBuildSystemPrompt 提示詞包含購物車摘要與全部菜單品項
func TestBuildSystemPrompt(t *testing.T) {
	m := menu.Get("small")

	prompt := BuildSystemPrompt(m, "Current order:\n- 1x Regular Brewed Coffee - $1.79\nTotal: $1.79")

	assert.Contains(t, prompt, "Dr. Donut")
	assert.Contains(t, prompt, "1x Regular Brewed Coffee")
	assert.Contains(t, prompt, "# DONUTS")
	assert.Contains(t, prompt, "# COFFEE")
	assert.Contains(t, prompt, "PUMPKIN SPICE LATTE $4.59")
	assert.Contains(t, prompt, "REGULAR BREWED COFFEE $1.79")
}

// TestBuildSystemPromptEmptyCart 沒有摘要時標明購物車為空
func TestBuildSystemPromptEmptyCart(t *testing.T) {
	prompt := BuildSystemPrompt(menu.Get("small"), "")
	assert.Contains(t, prompt, "The cart is currently empty.")
}

// TestCreateCall 成功建立通話並取得 join url
func TestCreateCall(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"joinUrl": "wss://voice.example/join/abc"})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	result, err := c.CreateCall(context.Background(), menu.Get("small"), "")

	require.NoError(t, err)
	assert.Equal(t, "wss://voice.example/join/abc", result.JoinURL)
	assert.Contains(t, gotBody["systemPrompt"], "Dr. Donut")
	assert.EqualValues(t, 0.8, gotBody["temperature"])
}

// TestCreateCallServerError 服務端錯誤回傳 error
func TestCreateCallServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream failure", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.CreateCall(context.Background(), menu.Get("small"), "")
	assert.Error(t, err)
}

// TestCreateCallDisabled 語音服務停用時直接回錯
func TestCreateCallDisabled(t *testing.T) {
	cfg := testConfig("http://localhost:0")
	cfg.Speech.Enabled = false

	c := NewClient(cfg)
	_, err := c.CreateCall(context.Background(), menu.Get("small"), "")
	assert.Error(t, err)
}
