package handler

import (
	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/response"
)

// HomeworkHandler HTTP handlers of the homework module
type HomeworkHandler struct {
	homeworkSvc service.HomeworkService
}

// NewHomeworkHandler creates a HomeworkHandler
func NewHomeworkHandler(homeworkSvc service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{homeworkSvc: homeworkSvc}
}

// Create POST /api/v1/homework
func (h *HomeworkHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.homeworkSvc.CreateAssignment(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// List GET /api/v1/homework
func (h *HomeworkHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.HomeworkListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.homeworkSvc.ListAssignments(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Details GET /api/v1/homework/:id
func (h *HomeworkHandler) Details(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.homeworkSvc.AssignmentDetails(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete DELETE /api/v1/homework/:id
func (h *HomeworkHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.homeworkSvc.DeleteAssignment(c.Request.Context(), actor, id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Submit POST /api/v1/homework/:id/submissions
func (h *HomeworkHandler) Submit(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.SubmitHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.homeworkSvc.Submit(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// StudentHomework GET /api/v1/homework/students/:id
func (h *HomeworkHandler) StudentHomework(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.homeworkSvc.StudentHomework(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Review PUT /api/v1/homework/submissions/:id/review
func (h *HomeworkHandler) Review(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.homeworkSvc.ReviewSubmission(c.Request.Context(), actor, id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
