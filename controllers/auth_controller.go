package controllers

import (
	"net/http"

	"github.com/denilsonbarahona/residencia/models"
	"github.com/denilsonbarahona/residencia/services"
	"github.com/denilsonbarahona/residencia/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Register()
	Login()
}

// AuthController 处理注册与登录请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 表示业主注册请求
type RegisterRequest struct {
	Name               string `json:"name" binding:"required" example:"Juan Pérez"`
	Email              string `json:"email" binding:"required,email" example:"juan@example.com"`
	Password           string `json:"password" binding:"required" example:"secret123"`
	ConfirmPassword    string `json:"confirm_password" binding:"required" example:"secret123"`
	ResidentialName    string `json:"residential_name" binding:"required" example:"Residencial Las Palmas"`
	ResidentialAddress string `json:"residential_address" example:"Av. Principal 123"`
	Apartment          string `json:"apartment" example:"Apto 101"`
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"juan@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginData 表示登录成功后返回的数据
type LoginData struct {
	Token         string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	UserID        uint   `json:"user_id" example:"1"`
	Role          string `json:"role" example:"owner"`
	Name          string `json:"name" example:"Juan Pérez"`
	ResidentialID uint   `json:"residential_id" example:"1"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// Register 业主注册
// @Summary      Owner registration
// @Description  Register an owner account and create its residential complex
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration parameters"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
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

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.RegisterOwner(&services.RegisterOwnerInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		ResidentialName:    req.ResidentialName,
		ResidentialAddress: req.ResidentialAddress,
		Apartment:          req.Apartment,
	})
	if err != nil {
		if err.Error() == "email already in use" {
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to register owner: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Registration successful",
		"data":    user,
	})
}

// Login 用户登录
// @Summary      User login
// @Description  Authenticate with email and password and return a JWT token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login parameters"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Invalid request parameters",
			"data":    nil,
		})
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByEmail(req.Email)
	if err != nil || !models.CheckPasswordHash(req.Password, user.Password) {
		c.Ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid email or password",
			"data":    nil,
		})
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user.ID, string(user.Role), user.ResidentialID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "Failed to generate token",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Login successful",
		"data": LoginData{
			Token:         token,
			UserID:        user.ID,
			Role:          string(user.Role),
			Name:          user.Name,
			ResidentialID: user.ResidentialID,
		},
	})
}
