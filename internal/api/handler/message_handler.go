package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required,gt=0"`
	Body       string `json:"body" binding:"required,notblank"`
}

// SendMessage 发私信(需要互关)
// @Summary 发私信
// @Tags 私信
// @Accept json
// @Produce json
// @Param request body sendMessageRequest true "消息内容"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.messageService.SendMessage(c.Request.Context(), middleware.CurrentUserID(c), req.ReceiverID, req.Body)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto)
}

// MessagesBetween 查询与某用户的消息记录
// @Summary 查询与某用户的消息记录
// @Tags 私信
// @Param other_user_id path int true "对方用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/messages/{other_user_id} [get]
func (h *Handler) MessagesBetween(c *gin.Context) {
	otherID, ok := pathID(c, "other_user_id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	msgs, err := h.messageService.MessagesBetween(c.Request.Context(), middleware.CurrentUserID(c), otherID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, msgs)
}

// Conversations 收件箱会话预览
// @Summary 收件箱会话预览
// @Tags 私信
// @Success 200 {object} response.Response
// @Router /api/v1/conversations [get]
func (h *Handler) Conversations(c *gin.Context) {
	previews, err := h.messageService.Conversations(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, previews)
}

// MarkConversationRead 标记会话内消息为已读
// @Summary 标记会话已读
// @Tags 私信
// @Param conversation_id path int true "会话ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/messages/read/{conversation_id} [put]
func (h *Handler) MarkConversationRead(c *gin.Context) {
	convID, ok := pathID(c, "conversation_id")
	if !ok {
		response.BadRequest(c, "invalid conversation id")
		return
	}
	if err := h.messageService.MarkRead(c.Request.Context(), convID, middleware.CurrentUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "marked as read", nil)
}

// MarkReadWithUser 按对端用户标记已读,会话不存在时也返回成功
// @Summary 按对端用户标记已读
// @Tags 私信
// @Param other_user_id path int true "对方用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/messages/read-with/{other_user_id} [put]
func (h *Handler) MarkReadWithUser(c *gin.Context) {
	otherID, ok := pathID(c, "other_user_id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	if err := h.messageService.MarkReadWith(c.Request.Context(), middleware.CurrentUserID(c), otherID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "marked as read", nil)
}
