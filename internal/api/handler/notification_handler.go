package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

// ListNotifications 通知列表
// @Summary 通知列表
// @Tags 通知
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	list, err := h.notificationService.ListByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, list)
}

// ListUnreadNotifications 未读通知列表
// @Summary 未读通知列表
// @Tags 通知
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/unread [get]
func (h *Handler) ListUnreadNotifications(c *gin.Context) {
	list, err := h.notificationService.ListUnread(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, list)
}

// MarkNotificationRead 标记单条通知已读
// @Summary 标记通知已读
// @Tags 通知
// @Param id path int true "通知ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/notifications/{id}/read [put]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid notification id")
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "marked as read", nil)
}

// MarkAllNotificationsRead 全部标记已读
// @Summary 全部通知标记已读
// @Tags 通知
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/read-all [put]
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "all marked as read", nil)
}
