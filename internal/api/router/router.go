package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/api/handler"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/api/middleware"
	"github.com/berba-q/hospitality-scheduler-sub001/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// 换班模块
		swaps := v1.Group("/swaps")
		{
			swaps.GET("/board", h.Swap.GetBoard)
			swaps.GET("/actions/recent", h.Swap.ListMyDispatchLogs)
			swaps.GET("/:id", h.Swap.GetRequest)
			swaps.GET("/:id/timeline", h.Swap.GetTimeline)
			swaps.GET("/:id/dispatch-logs", middleware.RoleAuth("manager"), h.Swap.ListDispatchLogs)
			swaps.POST("/:id/actions", h.Swap.Act)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/swaps/history", h.Export.ExportHistory)
		}
	}

	return r
}
