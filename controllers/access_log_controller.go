package controllers

import (
	"net/http"
	"strconv"

	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAccessLogController 定义访问日志控制器接口
type InterfaceAccessLogController interface {
	GetAccessLogs()
}

// AccessLogController 处理扫描历史查询请求
type AccessLogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAccessLogController 创建一个新的访问日志控制器
func NewAccessLogController(ctx *gin.Context, container *container.ServiceContainer) *AccessLogController {
	return &AccessLogController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAccessLogFunc 返回一个处理访问日志请求的Gin处理函数
func HandleAccessLogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAccessLogController(ctx, container)

		switch method {
		case "getAccessLogs":
			controller.GetAccessLogs()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetAccessLogs 分页获取小区的扫描历史
// @Summary      List access logs
// @Description  Paginated scan history of the caller's residential, newest first
// @Tags         AccessLog
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /access-logs [get]
func (c *AccessLogController) GetAccessLogs() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	accessLogService := c.Container.GetService("access_log").(services.InterfaceAccessLogService)
	logs, total, err := accessLogService.GetAccessLogsByResidential(user.ResidentialID, page, pageSize)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to list access logs: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
			"data":        logs,
		},
	})
}
