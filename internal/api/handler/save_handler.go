package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

type saveRequest struct {
	ResourceType string `json:"resource_type" binding:"required,oneof=POST RECIPE"`
	ResourceID   int64  `json:"resource_id" binding:"required,gt=0"`
}

// SaveResource 收藏
// @Summary 收藏
// @Tags 收藏
// @Accept json
// @Produce json
// @Param request body saveRequest true "收藏目标"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/saves [post]
func (h *Handler) SaveResource(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.saveService.Save(c.Request.Context(), middleware.CurrentUserID(c), req.ResourceType, req.ResourceID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto)
}

// UnsaveResource 取消收藏
// @Summary 取消收藏
// @Tags 收藏
// @Accept json
// @Produce json
// @Param request body saveRequest true "取消收藏目标"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/saves [delete]
func (h *Handler) UnsaveResource(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.saveService.Unsave(c.Request.Context(), middleware.CurrentUserID(c), req.ResourceType, req.ResourceID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "unsaved", nil)
}

// ListSaves 收藏列表
// @Summary 收藏列表
// @Tags 收藏
// @Success 200 {object} response.Response
// @Router /api/v1/saves [get]
func (h *Handler) ListSaves(c *gin.Context) {
	list, err := h.saveService.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, list)
}
