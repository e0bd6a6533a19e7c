package evaluation

import (
	"net/http"

	"cart-normalizer/internal/api/handlers"
	"cart-normalizer/internal/core/eval"
	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunRequest 評估執行請求
type RunRequest struct {
	Menu        string   `json:"menu,omitempty"`         // 限定菜單，空值代表全部
	ScenarioIDs []string `json:"scenario_ids,omitempty"` // 限定情境 ID
	Async       bool     `json:"async,omitempty"`        // 交由隊列非同步執行
	Save        bool     `json:"save,omitempty"`         // 將報告寫入輸出目錄
}

// Handler 評估處理程序
type Handler struct {
	config *config.Config
	queue  *eval.Queue
}

// NewHandler 創建評估處理程序
func NewHandler(cfg *config.Config, queue *eval.Queue) *Handler {
	return &Handler{
		config: cfg,
		queue:  queue,
	}
}

// HandleRun 執行評估，可同步或交由隊列
func (h *Handler) HandleRun(c *gin.Context) {
	var req RunRequest
	// 請求體可省略，省略時評估全部情境
	_ = c.ShouldBindJSON(&req)

	if req.Async {
		job, err := h.queue.Enqueue(c.Request.Context(), req.Menu, req.ScenarioIDs)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, job)
		return
	}

	scenarios := eval.AllScenarios()
	if req.Menu != "" {
		scenarios = eval.ScenariosByMenu(req.Menu)
	}
	scenarios = eval.FilterScenarios(scenarios, req.ScenarioIDs)

	report := eval.NewRunner().Run(scenarios)

	if req.Save {
		path, err := report.Save(h.config.Evaluation.OutputDir)
		if err != nil {
			common.LogError("評估報告寫入失敗",
				zap.Error(err),
			)
		} else {
			common.LogInfo("評估報告已寫入",
				zap.String("路徑", path),
			)
		}
	}

	c.JSON(http.StatusOK, report)
}

// HandleJob 查詢非同步評估任務
func (h *Handler) HandleJob(c *gin.Context) {
	job, err := h.queue.Get(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// HandleQueueStatus 查詢評估隊列狀態
func (h *Handler) HandleQueueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.queue.Status())
}
