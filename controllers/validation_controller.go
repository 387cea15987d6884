package controllers

import (
	"net/http"

	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceValidationController 定义扫码验证控制器接口
type InterfaceValidationController interface {
	ValidateQRCode()
	CheckQRCode()
}

// ValidationController 处理门卫扫码验证请求
type ValidationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewValidationController 创建一个新的验证控制器
func NewValidationController(ctx *gin.Context, container *container.ServiceContainer) *ValidationController {
	return &ValidationController{
		Ctx:       ctx,
		Container: container,
	}
}

// ValidateQRCodeRequest 表示扫码验证请求
type ValidateQRCodeRequest struct {
	QRData string `json:"qrData" example:"{\"id\":\"1700000000000-a1b2c3d4e\",...}"`
}

// HandleValidationFunc 返回一个处理验证请求的Gin处理函数
func HandleValidationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewValidationController(ctx, container)

		switch method {
		case "validateQRCode":
			controller.ValidateQRCode()
		case "checkQRCode":
			controller.CheckQRCode()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// ValidateQRCode 完整扫码验证(门卫岗亭)
// 每次请求无论结果如何都会留下一条审计日志
// @Summary      Validate scanned QR code
// @Description  Resolve a scanned payload, apply activity and expiry policy, audit the attempt
// @Tags         Validation
// @Accept       json
// @Produce      json
// @Param        request body ValidateQRCodeRequest true "Scanned payload"
// @Success      200  {object}  map[string]interface{} "valid:true with resident projection"
// @Failure      400  {object}  map[string]interface{} "missing or malformed payload"
// @Failure      403  {object}  map[string]interface{} "inactive or expired"
// @Failure      404  {object}  map[string]interface{} "unknown payload"
// @Failure      500  {object}  map[string]interface{} "internal error"
// @Router       /qr/validate [post]
func (c *ValidationController) ValidateQRCode() {
	var req ValidateQRCodeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.QRData == "" {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"valid":   false,
			"message": "QR data is required",
		})
		return
	}

	validationService := c.Container.GetService("validation").(services.InterfaceValidationService)
	result := validationService.ValidateQRCode(req.QRData)

	if result.Valid {
		c.Ctx.JSON(result.StatusCode, gin.H{
			"valid":   true,
			"message": result.Message,
			"data":    result.Data,
		})
		return
	}

	c.Ctx.JSON(result.StatusCode, gin.H{
		"valid":   false,
		"message": result.Message,
	})
}

// CheckQRCode 轻量布尔验证(门禁闸机的GET形式)
// @Summary      Check scanned QR code
// @Description  Boolean pass/fail gate check without resident projection
// @Tags         Validation
// @Produce      json
// @Param        data query string true "Scanned payload"
// @Success      200  {object}  map[string]interface{} "valid:true"
// @Failure      400  {object}  map[string]interface{} "missing or malformed payload"
// @Failure      403  {object}  map[string]interface{} "unknown, inactive or expired"
// @Failure      500  {object}  map[string]interface{} "internal error"
// @Router       /qr/validate [get]
func (c *ValidationController) CheckQRCode() {
	qrData := c.Ctx.Query("data")
	if qrData == "" {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"valid":   false,
			"message": "QR data is required",
		})
		return
	}

	validationService := c.Container.GetService("validation").(services.InterfaceValidationService)
	valid, status := validationService.CheckQRCode(qrData)

	switch {
	case valid:
		c.Ctx.JSON(status, gin.H{"valid": true})
	case status == http.StatusBadRequest:
		c.Ctx.JSON(status, gin.H{
			"valid":   false,
			"message": "Invalid QR format",
		})
	case status == http.StatusInternalServerError:
		c.Ctx.JSON(status, gin.H{
			"valid":   false,
			"message": "Internal server error",
		})
	default:
		c.Ctx.JSON(status, gin.H{"valid": false})
	}
}
