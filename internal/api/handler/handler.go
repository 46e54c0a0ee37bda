package handler

import "tutor-center/backend/internal/service"

// Handler aggregate of all HTTP handlers
type Handler struct {
	Auth       *AuthHandler
	Roster     *RosterHandler
	Attendance *AttendanceHandler
	Payment    *PaymentHandler
	Homework   *HomeworkHandler
	Export     *ExportHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Roster:     NewRosterHandler(svc.Roster),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Payment:    NewPaymentHandler(svc.Payment),
		Homework:   NewHomeworkHandler(svc.Homework),
		Export:     NewExportHandler(svc.Export, svc.Calendar),
	}
}
