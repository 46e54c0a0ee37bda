package dto

// ── Attendance DTO ──

// SetAttendanceRequest mark a student for a date
type SetAttendanceRequest struct {
	Date   string  `json:"date"   binding:"required,ymd"`
	Status string  `json:"status" binding:"required,attendance_status"`
	Notes  *string `json:"notes"  binding:"omitempty,max=500"`
}

// CycleAttendanceRequest advance the one-click toggle for a date
type CycleAttendanceRequest struct {
	Date string `json:"date" binding:"required,ymd"`
}

// DateQuery single calendar date
type DateQuery struct {
	Date string `form:"date" binding:"required,ymd"`
}

// DateRangeQuery inclusive calendar date range
type DateRangeQuery struct {
	From string `form:"from" binding:"required,ymd"`
	To   string `form:"to"   binding:"required,ymd"`
}
