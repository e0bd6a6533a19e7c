package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/core/cache"
	"cart-normalizer/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performParse(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/order/parse", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.HandleParse(c)
	return w
}

// TestHandleParse 轉錄文本解析為購物車
func TestHandleParse(t *testing.T) {
	h := NewHandler(nil, "small")

	w := performParse(h, `{"text":"a chocolate donut with sprinkles and a raspberry donut"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "small", resp.Menu)
	assert.False(t, resp.Cached)
	require.Len(t, resp.Cart.Items, 2)
	assert.Equal(t, "DON002", resp.Cart.Items[0].SKU)
	assert.Equal(t, []string{"sprinkles"}, resp.Cart.Items[0].Modifiers)
	assert.Equal(t, "DON003", resp.Cart.Items[1].SKU)
	assert.InDelta(t, 2.18, resp.Cart.Total, 1e-9)
}

// TestHandleParseCached 第二次相同請求命中快取
func TestHandleParseCached(t *testing.T) {
	store := cache.NewManager(&config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         10,
			TTL:             time.Hour,
			CleanupInterval: time.Hour,
		},
	})
	defer store.Close()

	h := NewHandler(store, "small")
	body := `{"text":"two medium regular brewed coffees with cream","menu":"small"}`

	first := performParse(h, body)
	require.Equal(t, http.StatusOK, first.Code)
	var firstResp ParseResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	assert.False(t, firstResp.Cached)

	second := performParse(h, body)
	require.Equal(t, http.StatusOK, second.Code)
	var secondResp ParseResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.True(t, secondResp.Cached)
	assert.Equal(t, firstResp.Cart, secondResp.Cart)
}

// TestHandleParseUnknownMenu 未知菜單回傳 404
func TestHandleParseUnknownMenu(t *testing.T) {
	h := NewHandler(nil, "small")

	w := performParse(h, `{"text":"a coffee","menu":"nonexistent"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "MENU_NOT_FOUND")
}

// TestHandleParseEmptyText 空白文本回傳 400
func TestHandleParseEmptyText(t *testing.T) {
	h := NewHandler(nil, "small")

	w := performParse(h, `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_TRANSCRIPT")
}

// TestHandleParseInvalidBody 缺少必填欄位回傳 400
func TestHandleParseInvalidBody(t *testing.T) {
	h := NewHandler(nil, "small")

	w := performParse(h, `{"menu":"small"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
