package sessions

import (
	"fmt"
	"net/http"
	"strings"

	"cart-normalizer/internal/api/handlers"
	"cart-normalizer/internal/core/cart"
	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/core/session"
	"cart-normalizer/internal/core/speech"
	"cart-normalizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateRequest 建立點餐會話請求
type CreateRequest struct {
	Menu string `json:"menu,omitempty"` // 菜單名稱，默認 small
}

// CreateResponse 建立點餐會話響應
type CreateResponse struct {
	SessionID string `json:"session_id"`
	Menu      string `json:"menu"`
}

// TextRequest 轉錄文本請求
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// TextResponse 轉錄處理結果
type TextResponse struct {
	Message string        `json:"message,omitempty"`
	Cart    cart.Snapshot `json:"cart"`
}

// UpdateItemRequest 調整購物車品項數量
type UpdateItemRequest struct {
	Index    int `json:"index"`
	Quantity int `json:"quantity"`
}

// CallResponse 語音通話建立結果
type CallResponse struct {
	JoinURL string `json:"join_url"`
}

// Handler 點餐會話處理程序
type Handler struct {
	manager     *session.Manager
	speech      *speech.Client
	defaultMenu string
}

// NewHandler 創建點餐會話處理程序
func NewHandler(manager *session.Manager, speechClient *speech.Client, defaultMenu string) *Handler {
	return &Handler{
		manager:     manager,
		speech:      speechClient,
		defaultMenu: defaultMenu,
	}
}

// HandleCreate 建立新的點餐會話
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateRequest
	// 請求體可省略，省略時使用默認菜單
	_ = c.ShouldBindJSON(&req)

	menuName := req.Menu
	if menuName == "" {
		menuName = h.defaultMenu
	}
	if _, ok := menu.Find(menuName); !ok {
		handlers.RespondError(c, common.ErrMenuNotFound)
		return
	}
	menuName = strings.ToLower(menuName)

	s := h.manager.Create(menuName)
	common.LogInfo("點餐會話已建立",
		zap.String("會話ID", s.ID),
		zap.String("菜單", menuName),
	)

	c.JSON(http.StatusCreated, CreateResponse{
		SessionID: s.ID,
		Menu:      menuName,
	})
}

// session 取出路徑參數指定的會話
func (h *Handler) session(c *gin.Context) (*session.VoiceSession, bool) {
	s, ok := h.manager.Get(c.Param("id"))
	if !ok {
		handlers.RespondError(c, common.ErrSessionNotFound)
		return nil, false
	}
	return s, true
}

// HandleText 處理使用者語音轉錄文本
func (h *Handler) HandleText(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		handlers.RespondError(c, common.ErrEmptyTranscript)
		return
	}

	message, snap := s.ProcessTranscript(req.Text)
	c.JSON(http.StatusOK, TextResponse{
		Message: message,
		Cart:    snap,
	})
}

// HandleAgentText 處理語音代理輸出的文本
func (h *Handler) HandleAgentText(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	snap := s.ProcessAgentText(req.Text)
	c.JSON(http.StatusOK, TextResponse{Cart: snap})
}

// HandleCart 查詢目前購物車
func (h *Handler) HandleCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TextResponse{Cart: s.CartSnapshot()})
}

// HandleClear 清空購物車
func (h *Handler) HandleClear(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TextResponse{Cart: s.ClearCart()})
}

// HandleUpdateItem 調整購物車品項數量，數量為零時移除
func (h *Handler) HandleUpdateItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	snap, err := s.UpdateItemQuantity(req.Index, req.Quantity)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Cart: snap})
}

// HandleConfirm 確認訂單並寫入歷史
func (h *Handler) HandleConfirm(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	order, err := s.ConfirmOrder()
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// HandleHistory 查詢已確認的訂單歷史
func (h *Handler) HandleHistory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": s.History()})
}

// HandleDelete 結束並刪除會話
func (h *Handler) HandleDelete(c *gin.Context) {
	if !h.manager.Delete(c.Param("id")) {
		handlers.RespondError(c, common.ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// HandleReset 清除全部會話
func (h *Handler) HandleReset(c *gin.Context) {
	removed := h.manager.Reset()
	common.LogInfo("全部會話已清除",
		zap.Int("數量", removed),
	)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// HandleCall 建立語音通話並回傳加入連結
func (h *Handler) HandleCall(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	result, err := h.speech.CreateCall(c.Request.Context(), s.Menu(), cartSummary(s.CartSnapshot()))
	if err != nil {
		common.LogError("語音通話建立失敗",
			zap.Error(err),
			zap.String("會話ID", s.ID),
		)
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CallResponse{JoinURL: result.JoinURL})
}

// cartSummary 供語音代理提示詞使用的購物車摘要
func cartSummary(snap cart.Snapshot) string {
	if len(snap.Items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Current order:\n")
	for _, item := range snap.Items {
		fmt.Fprintf(&b, "- %dx %s", item.Quantity, item.Name)
		if item.Size != nil {
			fmt.Fprintf(&b, " (%s)", *item.Size)
		}
		if len(item.Modifiers) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(item.Modifiers, ", "))
		}
		fmt.Fprintf(&b, " - $%.2f\n", item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "Total: $%.2f", snap.Total)
	return b.String()
}
