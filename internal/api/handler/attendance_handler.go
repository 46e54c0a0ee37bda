package handler

import (
	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/response"
)

// AttendanceHandler HTTP handlers of the attendance module
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GetStatus GET /api/v1/attendance/students/:id?date=
func (h *AttendanceHandler) GetStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	date, ok := bindDate(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GetStatus(c.Request.Context(), actor, id, date)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// SetStatus PUT /api/v1/attendance/students/:id
func (h *AttendanceHandler) SetStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.SetStatus(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// CycleStatus POST /api/v1/attendance/students/:id/cycle
func (h *AttendanceHandler) CycleStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CycleAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, CodeInvalidParams, "date must be YYYY-MM-DD")
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.CycleStatus(c.Request.Context(), actor, id, date)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Rate GET /api/v1/attendance/students/:id/rate?from=&to=
func (h *AttendanceHandler) Rate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	from, to, ok := bindDateRange(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.AttendanceRate(c.Request.Context(), actor, id, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// History GET /api/v1/attendance/students/:id/history?from=&to=
func (h *AttendanceHandler) History(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	from, to, ok := bindDateRange(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.StudentAttendanceHistory(c.Request.Context(), actor, id, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GroupMonth GET /api/v1/attendance/groups/:id?year=&month=
func (h *AttendanceHandler) GroupMonth(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GroupAttendanceForMonth(c.Request.Context(), actor, c.Param("id"), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
