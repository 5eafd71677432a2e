package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/luoyx/content_ai_server/internal/pkg/response"
	"github.com/luoyx/content_ai_server/internal/repository"
)

// Admin 管理员权限中间件，必须在 Auth 之后使用
func Admin(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin() || !user.IsActive {
			response.PermissionError(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}
