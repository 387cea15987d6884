package controllers

import (
	"net/http"

	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceDashboardController 定义控制台控制器接口
type InterfaceDashboardController interface {
	GetStats()
}

// DashboardController 处理控制台统计请求
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的控制台控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc 返回一个处理控制台请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getStats":
			controller.GetStats()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetStats 获取控制台统计数据
// @Summary      Dashboard statistics
// @Description  QR and resident counters for the caller's view, cached briefly in Redis
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/stats [get]
func (c *DashboardController) GetStats() {
	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	stats, err := dashboardService.GetStats(user)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to load dashboard stats: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    stats,
	})
}
