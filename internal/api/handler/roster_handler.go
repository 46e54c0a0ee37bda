package handler

import (
	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/response"
)

// RosterHandler HTTP handlers of grades, tracks, group days and students
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler creates a RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// ────────────────────── Grades & Tracks ──────────────────────

// CreateGrade POST /api/v1/grades
func (h *RosterHandler) CreateGrade(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.rosterSvc.CreateGrade(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// ListGrades GET /api/v1/grades
func (h *RosterHandler) ListGrades(c *gin.Context) {
	result, err := h.rosterSvc.ListGrades(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateTrack POST /api/v1/grades/:id/tracks
func (h *RosterHandler) CreateTrack(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.CreateTrack(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// ListTracks GET /api/v1/grades/:id/tracks
func (h *RosterHandler) ListTracks(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.ListTracks(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── Group days ──────────────────────

// CreateGroupDay POST /api/v1/group-days
func (h *RosterHandler) CreateGroupDay(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateGroupDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.rosterSvc.CreateGroupDay(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// ListGroupDays GET /api/v1/group-days
func (h *RosterHandler) ListGroupDays(c *gin.Context) {
	var req dto.GroupDayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.rosterSvc.ListGroupDays(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetGroupDay GET /api/v1/group-days/:id
func (h *RosterHandler) GetGroupDay(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.GetGroupDay(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GroupDates GET /api/v1/group-days/:id/dates?year=&month=
func (h *RosterHandler) GroupDates(c *gin.Context) {
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.GroupDatesForMonth(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── Students ──────────────────────

// ListStudents GET /api/v1/students
func (h *RosterHandler) ListStudents(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.rosterSvc.ListActiveStudents(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetStudent GET /api/v1/students/:id
func (h *RosterHandler) GetStudent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.GetStudent(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// MyProfile GET /api/v1/students/me
func (h *RosterHandler) MyProfile(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.MyProfile(c.Request.Context(), actor)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateStudent POST /api/v1/students
func (h *RosterHandler) CreateStudent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.rosterSvc.CreateStudent(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateStudent PUT /api/v1/students/:id
func (h *RosterHandler) UpdateStudent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.UpdateStudent(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// DeactivateStudent POST /api/v1/students/:id/deactivate
func (h *RosterHandler) DeactivateStudent(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.rosterSvc.Deactivate(c.Request.Context(), actor, id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
