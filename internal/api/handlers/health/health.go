package health

import (
	"net/http"
	"runtime"
	"time"

	"cart-normalizer/internal/core/cache"
	"cart-normalizer/internal/core/eval"
	"cart-normalizer/internal/core/menu"
	"cart-normalizer/internal/core/session"
	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *eval.QueueStatus      `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
	Sessions  int                    `json:"sessions"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if q, exists := c.Get("eval_queue"); exists {
		if queue, ok := q.(*eval.Queue); ok && queue != nil {
			status := queue.Status()
			response.Queue = &status
		}
	}

	if s, exists := c.Get("cache_store"); exists {
		if store, ok := s.(cache.Store); ok && store != nil {
			response.Cache = store.Stats()
		}
	}

	if mgr, exists := c.Get("session_manager"); exists {
		if sessions, ok := mgr.(*session.Manager); ok && sessions != nil {
			response.Sessions = sessions.Count()
		}
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，確認內建菜單可用
func ReadinessCheck(c *gin.Context) {
	for _, name := range menu.Names() {
		if _, ok := menu.Find(name); !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"menu":   name,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
