package router

import (
	"fmt"
	"strings"

	"github.com/redutron/backend/internal/cache"
	"github.com/redutron/backend/internal/config"
	adminhandlers "github.com/redutron/backend/internal/http/handlers/admin"
	"github.com/redutron/backend/internal/logger"
	"github.com/redutron/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rt"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "登录尝试过于频繁，请 %d 秒后重试",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 商品管理
				authorized.GET("/products", adminHandler.GetProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.GET("/products/:id/stock", adminHandler.GetStockState)

				// 销售流水
				authorized.GET("/sales", adminHandler.GetSales)
				authorized.POST("/sales", adminHandler.CreateSale)
				authorized.DELETE("/sales/:id", adminHandler.DeleteSale)

				// 库存台账
				authorized.GET("/stock/levels", adminHandler.GetStockLevels)
				authorized.GET("/stock/entries", adminHandler.GetStockEntries)
				authorized.POST("/stock/entries", adminHandler.CreateStockEntry)
				authorized.POST("/stock/adjust", adminHandler.AdjustStock)

				// 税率与费率
				authorized.GET("/settings/rates", adminHandler.GetRates)
				authorized.PUT("/settings/rates", adminHandler.UpdateRates)

				// 贡献边际报表
				authorized.GET("/reports/margin", adminHandler.GetMarginReport)
				authorized.GET("/reports/margin/export", adminHandler.ExportMarginReport)

				// 工作簿导入
				authorized.POST("/imports/consolidated", adminHandler.ImportConsolidated)
				authorized.GET("/imports/consolidated/template", adminHandler.GetConsolidatedTemplate)
				authorized.POST("/imports/marketplace", adminHandler.ImportMarketplace)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
