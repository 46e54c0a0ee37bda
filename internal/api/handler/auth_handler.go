package handler

import (
	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/response"
)

// AuthHandler HTTP handlers of the identity module
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login exchanges email and password for a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// RefreshToken rotates the token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the access token of the request
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt, ok := MustGetToken(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Me current account
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), actor)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
