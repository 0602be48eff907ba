package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/api/handlers"
	"github.com/smsvault/smsvault/internal/api/middleware"
	"github.com/smsvault/smsvault/internal/config"
	"github.com/smsvault/smsvault/internal/events"
	"github.com/smsvault/smsvault/internal/otp"
	"github.com/smsvault/smsvault/internal/purge"
	"github.com/smsvault/smsvault/internal/sms"
	"github.com/smsvault/smsvault/internal/stats"
	"github.com/smsvault/smsvault/internal/token"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	// 非法方法返回 405 而不是 404
	router.HandleMethodNotAllowed = true

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	// 请求计数
	requestCounter := stats.NewRequestCounter(0)
	router.Use(middleware.RequestCounterMiddleware(requestCounter))

	// 健康检查端点
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "SmsVault",
		})
	})

	// 创建依赖
	eventService := events.NewService(db)
	tokenRepo := token.NewRepository(db)
	tokenService := token.NewService(tokenRepo)
	smsRepo := sms.NewRepository(db)
	ingestService := sms.NewIngestService(smsRepo, eventService)
	otpService := otp.NewService(smsRepo)
	purgeGuard := purge.NewGuard()

	receiveHandler := handlers.NewReceiveHandler(ingestService, tokenService)
	codeHandler := handlers.NewCodeHandler(otpService)
	smsHandler := handlers.NewSmsHandler(smsRepo, purgeGuard, eventService)
	tokenHandler := handlers.NewTokenHandler(tokenService, eventService)
	statsHandler := handlers.NewStatsHandler(smsRepo, requestCounter, eventService)

	apiGroup := router.Group("/api")
	{
		// 设备上报（Token 在 query 或请求体内，处理器内校验）
		apiGroup.POST("/sms/receive", receiveHandler.Receive)

		// 读取端：query token 优先，其次 Bearer
		readGroup := apiGroup.Group("")
		readGroup.Use(middleware.TokenAuth(tokenService))
		{
			readGroup.GET("/code/latest", codeHandler.Latest)
			readGroup.GET("/sms", smsHandler.List)
			readGroup.GET("/sms/devices", smsHandler.Devices)
		}

		// 管理端：配置的管理员 Bearer Token
		adminGroup := apiGroup.Group("")
		adminGroup.Use(middleware.AdminAuth(cfg.Admin.AdminToken))
		{
			tokens := adminGroup.Group("/tokens")
			{
				tokens.POST("", tokenHandler.CreateToken)
				tokens.GET("", tokenHandler.ListTokens)
				tokens.GET("/:id", tokenHandler.GetToken)
				tokens.POST("/:id/toggle", tokenHandler.ToggleToken)
				tokens.POST("/:id/reset", tokenHandler.ResetToken)
				tokens.DELETE("/:id", tokenHandler.DeleteToken)
			}

			adminGroup.GET("/sms/purge-token", smsHandler.PurgeToken)
			adminGroup.POST("/sms/purge", smsHandler.Purge)

			adminGroup.GET("/stats", statsHandler.GetStats)
			adminGroup.GET("/events", statsHandler.ListEvents)
		}
	}

	return router
}
