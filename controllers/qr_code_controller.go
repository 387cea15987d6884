package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/denilsonbarahona/residencia/models"
	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceQRCodeController 定义二维码控制器接口
type InterfaceQRCodeController interface {
	CreateQRCode()
	GetMyQRCodes()
	GetResidentialQRCodes()
	DeleteQRCode()
}

// QRCodeController 处理二维码签发与管理相关的请求
type QRCodeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewQRCodeController 创建一个新的二维码控制器
func NewQRCodeController(ctx *gin.Context, container *container.ServiceContainer) *QRCodeController {
	return &QRCodeController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateQRCodeRequest 表示签发二维码请求
type CreateQRCodeRequest struct {
	VisitorName string `json:"visitor_name" binding:"required" example:"Carlos Mendoza"`
	Note        string `json:"note" example:"Entrega de paquete"`
}

// HandleQRCodeFunc 返回一个处理二维码请求的Gin处理函数
func HandleQRCodeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewQRCodeController(ctx, container)

		switch method {
		case "createQRCode":
			controller.CreateQRCode()
		case "getMyQRCodes":
			controller.GetMyQRCodes()
		case "getResidentialQRCodes":
			controller.GetResidentialQRCodes()
		case "deleteQRCode":
			controller.DeleteQRCode()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// CreateQRCode 签发访客二维码(签发起4小时有效)
// @Summary      Issue visitor QR code
// @Description  Issue a time-boxed visitor access QR code, valid for 4 hours
// @Tags         QRCode
// @Accept       json
// @Produce      json
// @Param        request body CreateQRCodeRequest true "Issuance parameters - visitor name required"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /qr [post]
func (c *QRCodeController) CreateQRCode() {
	var req CreateQRCodeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Visitor name is required",
			"data":    nil,
		})
		return
	}

	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	qrCodeService := c.Container.GetService("qr_code").(services.InterfaceQRCodeService)
	qrCode, err := qrCodeService.CreateQRCode(user, req.VisitorName, req.Note)
	if err != nil {
		if err.Error() == "visitor name is required" {
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to issue QR code: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "QR code issued successfully",
		"data":    qrCode,
	})
}

// GetMyQRCodes 获取当前用户签发的二维码列表
// @Summary      List own QR codes
// @Description  List QR codes issued by the caller, newest first. active=true keeps only active unexpired codes
// @Tags         QRCode
// @Produce      json
// @Param        active query bool false "Only active and unexpired codes"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /qr [get]
func (c *QRCodeController) GetMyQRCodes() {
	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	qrCodeService := c.Container.GetService("qr_code").(services.InterfaceQRCodeService)
	qrCodes, err := qrCodeService.GetQRCodesByUser(user.ID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to list QR codes: " + err.Error(),
			"data":    nil,
		})
		return
	}

	// 有效性在读取时计算，不依赖存储的is_active是否已被惰性刷新
	if c.Ctx.Query("active") == "true" {
		now := time.Now()
		active := make([]models.QRCode, 0, len(qrCodes))
		for _, qr := range qrCodes {
			if qr.IsActive && !qr.IsExpired(now) {
				active = append(active, qr)
			}
		}
		qrCodes = active
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    qrCodes,
	})
}

// GetResidentialQRCodes 获取小区内全部二维码(业主视图)
// @Summary      List residential QR codes
// @Description  List all QR codes of the caller's residential, newest first
// @Tags         QRCode
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /qr/residential [get]
func (c *QRCodeController) GetResidentialQRCodes() {
	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	qrCodeService := c.Container.GetService("qr_code").(services.InterfaceQRCodeService)
	qrCodes, err := qrCodeService.GetQRCodesByResidential(user.ResidentialID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to list QR codes: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    qrCodes,
	})
}

// DeleteQRCode 删除二维码(硬删除，不可恢复)
// @Summary      Delete QR code
// @Description  Hard-delete a QR code. Allowed for the issuer or the residential owner
// @Tags         QRCode
// @Produce      json
// @Param        id path int true "QR code ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /qr/{id} [delete]
func (c *QRCodeController) DeleteQRCode() {
	id := c.Ctx.Param("id")
	idUint, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的二维码ID",
			"data":    nil,
		})
		return
	}

	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	qrCodeService := c.Container.GetService("qr_code").(services.InterfaceQRCodeService)
	if err := qrCodeService.DeleteQRCode(uint(idUint), user.ID, string(user.Role), user.ResidentialID); err != nil {
		switch err.Error() {
		case "qr code not found":
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
		case "permission denied":
			c.Ctx.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "Failed to delete QR code: " + err.Error(),
				"data":    nil,
			})
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "QR code deleted successfully",
		"data":    nil,
	})
}
