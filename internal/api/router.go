package api

import (
	"context"
	"net/http"
	"time"

	"cart-normalizer/internal/api/handlers/evaluation"
	"cart-normalizer/internal/api/handlers/health"
	menuHandler "cart-normalizer/internal/api/handlers/menus"
	orderHandler "cart-normalizer/internal/api/handlers/order"
	sessionHandler "cart-normalizer/internal/api/handlers/sessions"
	"cart-normalizer/internal/api/middleware"
	"cart-normalizer/internal/core/cache"
	"cart-normalizer/internal/core/eval"
	"cart-normalizer/internal/core/session"
	"cart-normalizer/internal/core/speech"
	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，轉錄文本不會更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store, sessionManager *session.Manager, evalQueue *eval.Queue) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制與請求去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 全局中間件：設置超時與服務
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("cache_store", store)
		c.Set("session_manager", sessionManager)
		c.Set("eval_queue", evalQueue)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
			return
		}
	})

	speechClient := speech.NewClient(cfg)

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		orderInstance := orderHandler.NewHandler(store, cfg.Menu.Default)
		sessionInstance := sessionHandler.NewHandler(sessionManager, speechClient, cfg.Menu.Default)
		evalInstance := evaluation.NewHandler(cfg, evalQueue)

		// 訂單解析
		orderGroup := api.Group("/order")
		{
			orderGroup.POST("/parse", orderInstance.HandleParse)
		}

		// 菜單
		menuGroup := api.Group("/menu")
		{
			menuGroup.GET("", menuHandler.HandleList)
			menuGroup.GET("/:name", menuHandler.HandleGet)
		}

		// 點餐會話
		sessionGroup := api.Group("/session")
		{
			sessionGroup.POST("", sessionInstance.HandleCreate)
			sessionGroup.DELETE("", sessionInstance.HandleReset)
			sessionGroup.GET("/:id/cart", sessionInstance.HandleCart)
			sessionGroup.POST("/:id/text", sessionInstance.HandleText)
			sessionGroup.POST("/:id/agent-text", sessionInstance.HandleAgentText)
			sessionGroup.POST("/:id/reset", sessionInstance.HandleClear)
			sessionGroup.PUT("/:id/item", sessionInstance.HandleUpdateItem)
			sessionGroup.POST("/:id/confirm", sessionInstance.HandleConfirm)
			sessionGroup.GET("/:id/history", sessionInstance.HandleHistory)
			sessionGroup.POST("/:id/call", sessionInstance.HandleCall)
			sessionGroup.DELETE("/:id", sessionInstance.HandleDelete)
		}

		// 評估
		evalGroup := api.Group("/evaluate")
		{
			evalGroup.POST("", evalInstance.HandleRun)
			evalGroup.GET("/queue", evalInstance.HandleQueueStatus)
			evalGroup.GET("/:id", evalInstance.HandleJob)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
