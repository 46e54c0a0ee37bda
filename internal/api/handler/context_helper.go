package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/pkg/response"
)

// Context keys written by middleware.JWTAuth
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetActor extracts the authenticated caller from the Gin context.
// When the JWT middleware did not run it writes a 401 and returns false;
// callers should return immediately.
func MustGetActor(c *gin.Context) (dto.Actor, bool) {
	id := c.GetString(CtxUserID)
	role := c.GetString(CtxRole)
	if id == "" || role == "" {
		response.Unauthorized(c, CodeUnauthenticated, "not authenticated")
		return dto.Actor{}, false
	}
	return dto.Actor{ID: id, Role: role}, true
}

// MustGetToken id and expiry of the access token used for this request.
func MustGetToken(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(CtxTokenJTI)
	exp, ok := c.Get(CtxTokenExp)
	expiresAt, isTime := exp.(time.Time)
	if jti == "" || !ok || !isTime {
		response.Unauthorized(c, CodeUnauthenticated, "not authenticated")
		return "", time.Time{}, false
	}
	return jti, expiresAt, true
}
