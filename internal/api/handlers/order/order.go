package order

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"cart-normalizer/internal/api/handlers"
	"cart-normalizer/internal/core/cache"
	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseRequest 語音轉錄解析請求
type ParseRequest struct {
	Text string `json:"text" binding:"required"` // 語音轉錄文本
	Menu string `json:"menu,omitempty"`          // 菜單名稱，默認 small
}

// ParseResponse 解析結果
type ParseResponse struct {
	Menu           string        `json:"menu"`
	NormalizedText string        `json:"normalized_text"`
	Cart           cart.Snapshot `json:"cart"`
	Cached         bool          `json:"cached"`
}

// Handler 點餐解析處理程序
type Handler struct {
	store       cache.Store
	defaultMenu string

	mu          sync.Mutex
	normalizers map[string]*cart.Normalizer
}

// NewHandler 創建點餐解析處理程序
func NewHandler(store cache.Store, defaultMenu string) *Handler {
	return &Handler{
		store:       store,
		defaultMenu: defaultMenu,
		normalizers: make(map[string]*cart.Normalizer),
	}
}

// normalizerFor 取得指定菜單的解析器，按菜單惰性建立
func (h *Handler) normalizerFor(m *menu.Menu, name string) *cart.Normalizer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n, ok := h.normalizers[name]; ok {
		return n
	}
	n := cart.NewNormalizer(m)
	h.normalizers[name] = n
	return n
}

// HandleParse 將語音轉錄文本解析為結構化購物車
func (h *Handler) HandleParse(c *gin.Context) {
	requestID := handlers.RequestID(c)

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		handlers.RespondError(c, common.ErrEmptyTranscript)
		return
	}

	menuName := req.Menu
	if menuName == "" {
		menuName = h.defaultMenu
	}
	m, ok := menu.Find(menuName)
	if !ok {
		handlers.RespondError(c, common.ErrMenuNotFound)
		return
	}
	menuName = strings.ToLower(menuName)

	n := h.normalizerFor(m, menuName)
	normalized := n.NormalizeText(req.Text)

	// 先查快取，命中時跳過解析
	if h.store != nil {
		if snap, err := h.store.Get(c.Request.Context(), menuName, normalized); err == nil {
			common.LogCacheHit(menuName, normalized)
			c.JSON(http.StatusOK, ParseResponse{
				Menu:           menuName,
				NormalizedText: normalized,
				Cart:           *snap,
				Cached:         true,
			})
			return
		}
		common.LogCacheMiss(menuName, normalized)
	}

	start := time.Now()
	result := n.ParseOrder(req.Text)
	snap := result.Snapshot()
	common.LogParse(menuName, len(snap.Items), time.Since(start), nil)

	if h.store != nil {
		if err := h.store.Set(c.Request.Context(), menuName, normalized, snap); err != nil {
			common.LogWarn("快取寫入失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
		}
	}

	c.JSON(http.StatusOK, ParseResponse{
		Menu:           menuName,
		NormalizedText: normalized,
		Cart:           snap,
		Cached:         false,
	})
}
