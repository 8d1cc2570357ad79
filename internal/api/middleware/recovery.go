package middleware

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/tastegraph/pkg/logger"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

// Recovery panic 兜底:上报 sentry + 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub.Recover(r)
				}
				logger.Error("panic recovered", zap.String("path", c.FullPath()), zap.Any("panic", r))
				response.InternalError(c, err)
				c.Abort()
			}
		}()
		c.Next()
	}
}
