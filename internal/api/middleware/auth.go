package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/auth"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

const ctxUserIDKey = "user_id"

// Auth 解析 Bearer token,把用户 ID 放进上下文
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		claims, err := auth.Parse(secret, token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ctxUserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID 读取认证中间件写入的用户 ID
func CurrentUserID(c *gin.Context) int64 {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
