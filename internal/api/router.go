package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/tastegraph/docs"
	"github.com/d60-Lab/tastegraph/internal/api/handler"
	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/internal/config"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

// NewRouter 组装路由;/auth/*、/healthz、swagger 免认证
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidations()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("tastegraph"))
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	authed := v1.Group("")
	authed.Use(middleware.Auth([]byte(cfg.JWT.Secret)))
	{
		authed.POST("/follows", h.Follow)
		authed.DELETE("/follows", h.Unfollow)
		authed.GET("/follows/check", h.CheckFollowing)
		authed.GET("/follows/mutual", h.CheckMutual)
		authed.POST("/follows/search", h.SearchFollows)
		authed.GET("/users/:user_id/followers", h.ListFollowers)
		authed.GET("/users/:user_id/following", h.ListFollowing)

		authed.POST("/messages", h.SendMessage)
		authed.GET("/messages/:other_user_id", h.MessagesBetween)
		authed.GET("/conversations", h.Conversations)
		authed.PUT("/messages/read/:conversation_id", h.MarkConversationRead)
		authed.PUT("/messages/read-with/:other_user_id", h.MarkReadWithUser)

		authed.GET("/notifications", h.ListNotifications)
		authed.GET("/notifications/unread", h.ListUnreadNotifications)
		authed.PUT("/notifications/:id/read", h.MarkNotificationRead)
		authed.PUT("/notifications/read-all", h.MarkAllNotificationsRead)

		authed.GET("/users/me", h.Me)
		authed.POST("/users/search", h.SearchUsers)

		authed.POST("/saves", h.SaveResource)
		authed.DELETE("/saves", h.UnsaveResource)
		authed.GET("/saves", h.ListSaves)

		authed.GET("/recommendations/recipes", h.RecommendRecipes)
		authed.GET("/recommendations/users", h.RecommendUsers)
	}

	return r
}
