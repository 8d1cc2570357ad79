package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/internal/search"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

type followRequest struct {
	FolloweeID int64 `json:"followee_id" binding:"required,gt=0"`
}

// Follow 关注用户
// @Summary 关注用户
// @Tags 关注
// @Accept json
// @Produce json
// @Param request body followRequest true "关注目标"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/follows [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.followService.Follow(c.Request.Context(), middleware.CurrentUserID(c), req.FolloweeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关注
// @Accept json
// @Produce json
// @Param request body followRequest true "取消关注目标"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/follows [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.followService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), req.FolloweeID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "unfollowed", nil)
}

// ListFollowers 查询粉丝列表
// @Summary 查询粉丝列表
// @Tags 关注
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{user_id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	list, err := h.followService.Followers(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, list)
}

// ListFollowing 查询关注列表
// @Summary 查询关注列表
// @Tags 关注
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{user_id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	list, err := h.followService.Following(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, list)
}

// CheckFollowing 查询是否已关注
// @Summary 查询是否已关注
// @Tags 关注
// @Param followee_id query int true "被关注者ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/follows/check [get]
func (h *Handler) CheckFollowing(c *gin.Context) {
	followeeID, err := strconv.ParseInt(c.Query("followee_id"), 10, 64)
	if err != nil || followeeID <= 0 {
		response.BadRequest(c, "invalid followee_id")
		return
	}
	following, err := h.followService.IsFollowing(c.Request.Context(), middleware.CurrentUserID(c), followeeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"following": following})
}

// CheckMutual 查询是否互关
// @Summary 查询是否互关
// @Tags 关注
// @Param other_id query int true "对方用户ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/follows/mutual [get]
func (h *Handler) CheckMutual(c *gin.Context) {
	otherID, err := strconv.ParseInt(c.Query("other_id"), 10, 64)
	if err != nil || otherID <= 0 {
		response.BadRequest(c, "invalid other_id")
		return
	}
	mutual, err := h.followService.IsMutual(c.Request.Context(), middleware.CurrentUserID(c), otherID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"mutual": mutual})
}

// SearchFollows 分页搜索粉丝/关注
// @Summary 分页搜索粉丝/关注
// @Tags 关注
// @Accept json
// @Produce json
// @Param request body search.FollowFilter true "过滤条件"
// @Success 200 {object} response.Response
// @Router /api/v1/follows/search [post]
func (h *Handler) SearchFollows(c *gin.Context) {
	var f search.FollowFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if f.UserID == 0 {
		f.UserID = middleware.CurrentUserID(c)
	}
	if f.SearchType == "" {
		f.SearchType = search.SearchFollowers
	}
	page, err := h.followService.Search(c.Request.Context(), &f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, page)
}
