package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/mlclient"
	"github.com/d60-Lab/tastegraph/internal/service"
)

// Handler 汇聚各业务服务的 HTTP 入口
type Handler struct {
	followService       service.FollowService
	messageService      service.MessageService
	notificationService service.NotificationService
	userService         service.UserService
	saveService         service.SaveService
	mlClient            *mlclient.Client
}

func New(
	followService service.FollowService,
	messageService service.MessageService,
	notificationService service.NotificationService,
	userService service.UserService,
	saveService service.SaveService,
	mlClient *mlclient.Client,
) *Handler {
	return &Handler{
		followService:       followService,
		messageService:      messageService,
		notificationService: notificationService,
		userService:         userService,
		saveService:         saveService,
		mlClient:            mlClient,
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
