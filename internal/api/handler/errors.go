package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/service"
	pkgerrors "tutor-center/backend/pkg/errors"
	"tutor-center/backend/pkg/response"
)

// Business codes carried in the response envelope
const (
	CodeInvalidParams   = 10001
	CodeUnauthenticated = 10002
	CodeForbidden       = 10003
	CodeTooManyRequests = 10004
	CodeBodyTooLarge    = 10005

	CodeInvalidCredentials = 11001
	CodeAccountDisabled    = 11002
	CodeInvalidToken       = 11003

	CodeNotFound              = 12001
	CodeReferentialViolation  = 12002
	CodeConfigMissing         = 12003
	CodeScopeViolation        = 12004
	CodeExportGenerateFailure = 16001

	CodeInternal = 50000
)

// handleError maps a service error onto the HTTP status and business code of its kind.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, CodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, CodeAccountDisabled, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, CodeInvalidToken, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, CodeExportGenerateFailure, err.Error())
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, CodeNotFound, err.Error())
	case errors.Is(err, pkgerrors.ErrReferentialViolation):
		response.UnprocessableEntity(c, CodeReferentialViolation, err.Error())
	case errors.Is(err, pkgerrors.ErrConfigMissing):
		response.Conflict(c, CodeConfigMissing, err.Error())
	case errors.Is(err, pkgerrors.ErrScopeViolation):
		response.Forbidden(c, CodeScopeViolation, err.Error())
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// badRequest reports a binding failure, listing the offending fields when the
// validator produced them.
func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, CodeInvalidParams, "invalid request parameters")
		return
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, CodeInvalidParams, "invalid request parameters", strings.Join(details, "; "))
}

// ── path and query helpers ──

// bindID reads the :id path parameter. A malformed id cannot name any row, so
// it answers 404 the same way a well-formed unknown id does.
func bindID(c *gin.Context) (string, bool) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.NotFound(c, CodeNotFound, "resource not found")
		return "", false
	}
	return uri.ID, true
}

func bindMonth(c *gin.Context) (int, time.Month, bool) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return 0, 0, false
	}
	return q.Year, time.Month(q.Month), true
}

func bindDate(c *gin.Context) (time.Time, bool) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return time.Time{}, false
	}
	date, err := model.ParseDate(q.Date)
	if err != nil {
		response.BadRequest(c, CodeInvalidParams, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func bindDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return time.Time{}, time.Time{}, false
	}
	from, errFrom := model.ParseDate(q.From)
	to, errTo := model.ParseDate(q.To)
	if errFrom != nil || errTo != nil {
		response.BadRequest(c, CodeInvalidParams, "dates must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
