package controllers

import (
	"net/http"
	"strings"

	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceInvitationController 定义邀请控制器接口
type InterfaceInvitationController interface {
	CreateInvitation()
	GetInvitations()
	VerifyInvitation()
	AcceptInvitation()
}

// InvitationController 处理邀请相关的请求
type InvitationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewInvitationController 创建一个新的邀请控制器
func NewInvitationController(ctx *gin.Context, container *container.ServiceContainer) *InvitationController {
	return &InvitationController{
		Ctx:       ctx,
		Container: container,
	}
}

// InvitationRequest 表示创建邀请请求
type InvitationRequest struct {
	Email string `json:"email" binding:"required,email" example:"resident@example.com"`
}

// AcceptInvitationRequest 表示接受邀请请求
type AcceptInvitationRequest struct {
	Token           string `json:"token" binding:"required" example:"a3f1c9e2-..."`
	Name            string `json:"name" binding:"required" example:"Ana García"`
	Password        string `json:"password" binding:"required" example:"secret123"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"secret123"`
	Apartment       string `json:"apartment" example:"Apto 201"`
}

// HandleInvitationFunc 返回一个处理邀请请求的Gin处理函数
func HandleInvitationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewInvitationController(ctx, container)

		switch method {
		case "createInvitation":
			controller.CreateInvitation()
		case "getInvitations":
			controller.GetInvitations()
		case "verifyInvitation":
			controller.VerifyInvitation()
		case "acceptInvitation":
			controller.AcceptInvitation()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// CreateInvitation 创建邀请
// @Summary      Create invitation
// @Description  Create a pending invitation for a future resident, returns the acceptance link
// @Tags         Invitation
// @Accept       json
// @Produce      json
// @Param        request body InvitationRequest true "Invitation parameters"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invitations [post]
func (c *InvitationController) CreateInvitation() {
	var req InvitationRequest
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

	invitationService := c.Container.GetService("invitation").(services.InterfaceInvitationService)
	invitation, link, err := invitationService.CreateInvitation(user.ResidentialID, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to create invitation: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Invitation created successfully",
		"data": gin.H{
			"invitation": invitation,
			"link":       link,
		},
	})
}

// GetInvitations 获取小区的邀请列表
// @Summary      List invitations
// @Description  List all invitations of the caller's residential, newest first
// @Tags         Invitation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invitations [get]
func (c *InvitationController) GetInvitations() {
	user, ok := getCurrentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	invitationService := c.Container.GetService("invitation").(services.InterfaceInvitationService)
	invitations, err := invitationService.GetInvitationsByResidential(user.ResidentialID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to list invitations: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    invitations,
	})
}

// VerifyInvitation 校验邀请令牌(接受页面加载时调用)
// @Summary      Verify invitation token
// @Description  Check that an invitation token is pending and not expired
// @Tags         Invitation
// @Produce      json
// @Param        token query string true "Invitation token"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /invitations/verify [get]
func (c *InvitationController) VerifyInvitation() {
	token := c.Ctx.Query("token")
	if token == "" {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Invitation token is required",
			"data":    nil,
		})
		return
	}

	invitationService := c.Container.GetService("invitation").(services.InterfaceInvitationService)
	invitation, err := invitationService.VerifyInvitation(token)
	if err != nil {
		switch err.Error() {
		case "invitation not found":
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
		case "invitation already used or expired", "invitation has expired":
			c.Ctx.JSON(http.StatusConflict, gin.H{
				"code":    409,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "Failed to verify invitation: " + err.Error(),
				"data":    nil,
			})
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"email":      invitation.Email,
			"expires_at": invitation.ExpiresAt,
		},
	})
}

// AcceptInvitation 接受邀请并注册住户账户
// @Summary      Accept invitation
// @Description  Register a resident account from a pending invitation
// @Tags         Invitation
// @Accept       json
// @Produce      json
// @Param        request body AcceptInvitationRequest true "Acceptance parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /invitations/accept [post]
func (c *InvitationController) AcceptInvitation() {
	var req AcceptInvitationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Invalid request parameters",
			"data":    nil,
		})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Passwords do not match",
			"data":    nil,
		})
		return
	}
	if len(req.Password) < 6 {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Password must be at least 6 characters",
			"data":    nil,
		})
		return
	}

	invitationService := c.Container.GetService("invitation").(services.InterfaceInvitationService)
	user, err := invitationService.AcceptInvitation(&services.AcceptInvitationInput{
		Token:     req.Token,
		Name:      req.Name,
		Password:  req.Password,
		Apartment: req.Apartment,
	})
	if err != nil {
		switch err.Error() {
		case "invitation not found":
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
		case "invitation already used or expired", "invitation has expired", "email already in use":
			c.Ctx.JSON(http.StatusConflict, gin.H{
				"code":    409,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "Failed to accept invitation: " + err.Error(),
				"data":    nil,
			})
		}
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Account created successfully",
		"data":    user,
	})
}
