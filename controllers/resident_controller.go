package controllers

import (
	"net/http"
	"strconv"

	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceResidentController 定义住户控制器接口
type InterfaceResidentController interface {
	GetResidents()
	UpdateResidentAccess()
}

// ResidentController 处理住户管理相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的住户控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateAccessRequest 表示撤销或恢复住户访问权的请求
type UpdateAccessRequest struct {
	Active *bool `json:"active" binding:"required" example:"false"`
}

// HandleResidentFunc 返回一个处理住户请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "updateResidentAccess":
			controller.UpdateResidentAccess()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetResidents 获取小区住户列表
// @Summary      List residents
// @Description  List all residents of the caller's residential, newest first
// @Tags         Resident
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents [get]
func (c *ResidentController) GetResidents() {
	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	residents, err := userService.GetResidentsByResidential(user.ResidentialID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to list residents: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    residents,
	})
}

// UpdateResidentAccess 撤销或恢复住户的访问权
// 只翻转用户的active标志，不会级联停用该住户已签发的二维码
// @Summary      Revoke or restore resident access
// @Description  Toggle a resident's active flag. Outstanding QR codes are not cascaded
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "Resident ID"
// @Param        request body UpdateAccessRequest true "Target active state"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents/{id}/access [put]
func (c *ResidentController) UpdateResidentAccess() {
	id := c.Ctx.Param("id")
	idUint, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的住户ID",
			"data":    nil,
		})
		return
	}

	var req UpdateAccessRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Invalid request parameters",
			"data":    nil,
		})
		return
	}

	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	resident, err := userService.SetResidentActive(uint(idUint), user.ResidentialID, *req.Active)
	if err != nil {
		if err.Error() == "resident not found" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to update resident access: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Resident access updated",
		"data":    resident,
	})
}
