package handler

import (
	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler HTTP handlers of the spreadsheet and calendar downloads
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportAttendance monthly attendance sheet of a group
// GET /api/v1/attendance/groups/:id/export?year=&month=
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportGroupAttendance(c.Request.Context(), actor, c.Param("id"), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

// ExportPayments monthly payment sheet of a group
// GET /api/v1/payments/groups/:id/export?year=&month=
func (h *ExportHandler) ExportPayments(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportGroupPayments(c.Request.Context(), actor, c.Param("id"), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

// Calendar class dates of a group as an iCalendar feed
// GET /api/v1/group-days/:id/calendar.ics?year=&month=
func (h *ExportHandler) Calendar(c *gin.Context) {
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	body, filename, err := h.calendarSvc.GroupCalendar(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, icsContentType, []byte(body))
}
