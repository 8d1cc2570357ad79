package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

// RecommendRecipes 个性化菜谱推荐;ML 后端不可用时返回 fallback 空列表
// @Summary 菜谱推荐
// @Tags 推荐
// @Param top_k query int false "数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/recommendations/recipes [get]
func (h *Handler) RecommendRecipes(c *gin.Context) {
	topK, _ := strconv.Atoi(c.DefaultQuery("top_k", "20"))
	res := h.mlClient.Recommendations(c.Request.Context(), middleware.CurrentUserID(c), topK, nil)
	response.Success(c, res)
}

// RecommendUsers 口味相似用户推荐
// @Summary 相似用户推荐
// @Tags 推荐
// @Param top_k query int false "数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/recommendations/users [get]
func (h *Handler) RecommendUsers(c *gin.Context) {
	topK, _ := strconv.Atoi(c.DefaultQuery("top_k", "10"))
	res := h.mlClient.SimilarUsers(c.Request.Context(), middleware.CurrentUserID(c), topK)
	response.Success(c, res)
}
