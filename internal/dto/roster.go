package dto

// ── Roster DTO ──

// CreateGradeRequest create grade
type CreateGradeRequest struct {
	Name      string `json:"name"       binding:"required,max=100"`
	HasTracks bool   `json:"has_tracks"`
}

// CreateTrackRequest create track under the grade in the path
type CreateTrackRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateGroupDayRequest create group day
type CreateGroupDayRequest struct {
	GradeID        string  `json:"grade_id"        binding:"required,uuid"`
	TrackID        *string `json:"track_id"        binding:"omitempty,uuid"`
	FirstDay       *int    `json:"first_day"       binding:"required,weekday"`
	SecondDay      *int    `json:"second_day"      binding:"required,weekday"`
	IncludesFriday bool    `json:"includes_friday"`
	TimeSlot       string  `json:"time_slot"       binding:"required,max=50"`
}

// GroupDayListRequest group day filters
type GroupDayListRequest struct {
	GradeID string `form:"grade_id" binding:"omitempty,uuid"`
	TrackID string `form:"track_id" binding:"omitempty,uuid"`
}

// IDUri entity id path parameter
type IDUri struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// MonthQuery year/month query parameters
type MonthQuery struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// StudentListRequest active roster filters
type StudentListRequest struct {
	GradeID    string `form:"grade_id"     binding:"omitempty,uuid"`
	TrackID    string `form:"track_id"     binding:"omitempty,uuid"`
	GroupDayID string `form:"group_day_id" binding:"omitempty,uuid"`
}

// CreateStudentRequest enroll a student and open their account
type CreateStudentRequest struct {
	FullName    string  `json:"full_name"    binding:"required,min=2,max=150"`
	Phone       string  `json:"phone"        binding:"omitempty,max=30"`
	ParentPhone string  `json:"parent_phone" binding:"omitempty,max=30"`
	Email       string  `json:"email"        binding:"required,email"`
	Password    string  `json:"password"     binding:"required,min=8,max=72"`
	GradeID     string  `json:"grade_id"     binding:"required,uuid"`
	TrackID     *string `json:"track_id"     binding:"omitempty,uuid"`
	GroupDayID  string  `json:"group_day_id" binding:"required,uuid"`
}

// UpdateStudentRequest replaces the student's roster fields
type UpdateStudentRequest struct {
	FullName    string  `json:"full_name"    binding:"required,min=2,max=150"`
	Phone       string  `json:"phone"        binding:"omitempty,max=30"`
	ParentPhone string  `json:"parent_phone" binding:"omitempty,max=30"`
	GradeID     string  `json:"grade_id"     binding:"required,uuid"`
	TrackID     *string `json:"track_id"     binding:"omitempty,uuid"`
	GroupDayID  string  `json:"group_day_id" binding:"required,uuid"`
}
