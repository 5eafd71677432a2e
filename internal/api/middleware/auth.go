package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luoyx/content_ai_server/internal/pkg/jwt"
	"github.com/luoyx/content_ai_server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

// bearerToken 从 Authorization 头取出 Bearer token，格式不对返回空串
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

// Auth JWT 认证中间件，校验通过后把用户 ID 写入上下文
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}

		token := bearerToken(c)
		if token == "" {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(token, jwtSecret)
		if err != nil {
			response.AuthError(c, "认证失败或已过期")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
