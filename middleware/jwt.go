package middleware

import (
	"net/http"
	"strings"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticate 验证令牌并校验角色，通过后把声明写入上下文
func authenticate(c *gin.Context, allowedRoles ...string) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	// 提取token
	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid or expired token",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token claims",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	// 检查角色
	role, exists := claims["role"].(string)
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Insufficient permissions: missing role",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	allowed := false
	for _, r := range allowedRoles {
		if role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Insufficient permissions: requires " + strings.Join(allowedRoles, " or ") + " role",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	// 存储claims到上下文
	c.Set("userID", claims["user_id"])
	c.Set("role", role)
	if residentialID, exists := claims["residential_id"]; exists && residentialID != nil {
		c.Set("residentialID", residentialID)
	}
	c.Set("claims", claims)
	return true
}

// AuthenticateUser 验证任意已注册用户(业主或住户)
func AuthenticateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, "owner", "resident") {
			c.Next()
		}
	}
}

// AuthenticateOwner 验证业主权限
func AuthenticateOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, "owner") {
			c.Next()
		}
	}
}
