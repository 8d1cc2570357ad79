package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/tastegraph/internal/api/middleware"
	"github.com/d60-Lab/tastegraph/internal/search"
	"github.com/d60-Lab/tastegraph/internal/service"
	"github.com/d60-Lab/tastegraph/pkg/response"
)

type registerRequest struct {
	Username           string   `json:"username" binding:"required,min=3,max=64"`
	DisplayName        string   `json:"display_name" binding:"max=128"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required,min=6"`
	Bio                string   `json:"bio"`
	Location           string   `json:"location"`
	IsChef             bool     `json:"is_chef"`
	ProfileURL         string   `json:"profile_url"`
	DietaryPreferences []string `json:"dietary_preferences"`
}

// Register 注册
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	dto, err := h.userService.Register(c.Request.Context(), &service.RegisterInput{
		Username:           req.Username,
		DisplayName:        req.DisplayName,
		Email:              req.Email,
		Password:           req.Password,
		Bio:                req.Bio,
		Location:           req.Location,
		IsChef:             req.IsChef,
		ProfileURL:         req.ProfileURL,
		DietaryPreferences: req.DietaryPreferences,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录,返回 JWT
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user": user})
}

// Me 当前用户资料(含计数器)
// @Summary 当前用户资料
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, profile)
}

// SearchUsers 分页搜索用户
// @Summary 分页搜索用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body search.UserFilter true "过滤条件"
// @Success 200 {object} response.Response
// @Router /api/v1/users/search [post]
func (h *Handler) SearchUsers(c *gin.Context) {
	var f search.UserFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, err := h.userService.Search(c.Request.Context(), &f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, page)
}
