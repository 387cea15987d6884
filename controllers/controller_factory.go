package controllers

import (
	"net/http"

	"github.com/denilsonbarahona/residencia/models"
	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"400"`
	Message string      `json:"message" example:"Invalid request parameters"`
	Data    interface{} `json:"data"`
}

// getCurrentUser 从上下文的JWT声明中解析当前用户并加载其记录
// 失败时已写出错误响应，调用方只需直接return
func getCurrentUser(ctx *gin.Context, c *container.ServiceContainer) (*models.User, bool) {
	rawID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authentication required",
			"data":    nil,
		})
		return nil, false
	}

	// JWT数值声明解码为float64
	idFloat, ok := rawID.(float64)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token claims",
			"data":    nil,
		})
		return nil, false
	}

	userService := c.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(idFloat))
	if err != nil {
		if err.Error() == "user not found" {
			ctx.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "User no longer exists",
				"data":    nil,
			})
			return nil, false
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to load user: " + err.Error(),
			"data":    nil,
		})
		return nil, false
	}

	return user, true
}
