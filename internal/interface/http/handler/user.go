package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建普通用户账号(管理员只能在数据库中设置)
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserInfo} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "用户名或邮箱已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	// 1. 绑定并验证参数
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证用户名密码，返回JWT Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Refresh 刷新Token
// @Summary      刷新Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=appuser.LoginResponse}
// @Failure      401 {object} response.Response "Token无效或已过期"
// @Router       /api/v1/users/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Refresh(c.Request.Context(), req.RefreshToken, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  当前Access Token加入黑名单
// @Tags         用户
// @Security     BearerAuth
// @Success      204 "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetUserID(c), middleware.GetAccessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
