package routes

import (
	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/controllers"
	_ "github.com/denilsonbarahona/residencia/docs"
	"github.com/denilsonbarahona/residencia/middleware"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/register", controllers.HandleAuthFunc(container, "register"))
	api.POST("/auth/login", controllers.HandleAuthFunc(container, "login"))

	// 邀请路由（住户凭链接访问，无需登录）
	api.GET("/invitations/verify", controllers.HandleInvitationFunc(container, "verifyInvitation"))
	api.POST("/invitations/accept", controllers.HandleInvitationFunc(container, "acceptInvitation"))

	// 门禁扫码校验路由
	api.POST("/qr/validate", controllers.HandleValidationFunc(container, "validateQRCode"))
	api.GET("/qr/validate", controllers.HandleValidationFunc(container, "checkQRCode"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 业主和住户均可访问
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateUser())

	// 访客二维码路由
	auth.Group("/qr").POST("", controllers.HandleQRCodeFunc(container, "createQRCode"))
	auth.Group("/qr").GET("", controllers.HandleQRCodeFunc(container, "getMyQRCodes"))
	auth.Group("/qr").DELETE("/:id", controllers.HandleQRCodeFunc(container, "deleteQRCode"))

	// 控制台统计路由
	auth.Group("/dashboard").GET("/stats", controllers.HandleDashboardFunc(container, "getStats"))

	// 仅业主可访问
	owner := api.Group("/")
	owner.Use(middleware.AuthenticateOwner())

	// 邀请管理路由
	owner.Group("/invitations").POST("", controllers.HandleInvitationFunc(container, "createInvitation"))
	owner.Group("/invitations").GET("", controllers.HandleInvitationFunc(container, "getInvitations"))

	// 住户管理路由
	owner.Group("/residents").GET("", controllers.HandleResidentFunc(container, "getResidents"))
	owner.Group("/residents").PUT("/:id/access", controllers.HandleResidentFunc(container, "updateResidentAccess"))

	// 小区二维码管理路由
	owner.Group("/qr").GET("/residential", controllers.HandleQRCodeFunc(container, "getResidentialQRCodes"))

	// 出入记录路由
	owner.Group("/access-logs").GET("", controllers.HandleAccessLogFunc(container, "getAccessLogs"))
}
