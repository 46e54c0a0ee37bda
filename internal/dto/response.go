package dto

// ── Auth responses ──

// TokenResponse token pair
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime in seconds
	User         UserResponse `json:"user"`
}

// UserResponse account as exposed to clients; the client picks its landing page from Role.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ── Roster responses ──

// GradeResponse grade with its tracks
type GradeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	HasTracks bool            `json:"has_tracks"`
	Tracks    []TrackResponse `json:"tracks"`
}

// TrackResponse track
type TrackResponse struct {
	ID      string `json:"id"`
	GradeID string `json:"grade_id"`
	Name    string `json:"name"`
}

// GroupDayResponse group day
type GroupDayResponse struct {
	ID             string  `json:"id"`
	GradeID        string  `json:"grade_id"`
	GradeName      string  `json:"grade_name,omitempty"`
	TrackID        *string `json:"track_id,omitempty"`
	TrackName      string  `json:"track_name,omitempty"`
	FirstDay       int     `json:"first_day"`
	SecondDay      int     `json:"second_day"`
	IncludesFriday bool    `json:"includes_friday"`
	TimeSlot       string  `json:"time_slot"`
	Label          string  `json:"label"`
}

// GroupDatesResponse class dates of a group for one month
type GroupDatesResponse struct {
	GroupDayID string   `json:"group_day_id"`
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	Dates      []string `json:"dates"`
}

// StudentResponse roster entry
type StudentResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Phone         string  `json:"phone"`
	ParentPhone   string  `json:"parent_phone"`
	GradeID       string  `json:"grade_id"`
	GradeName     string  `json:"grade_name,omitempty"`
	TrackID       *string `json:"track_id,omitempty"`
	TrackName     string  `json:"track_name,omitempty"`
	GroupDayID    string  `json:"group_day_id"`
	GroupDayLabel string  `json:"group_day_label,omitempty"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
}

// StudentBrief name-only student reference used inside group views
type StudentBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// ── Attendance responses ──

// AttendanceStatusResponse status of one (student, date); "unmarked" when no record exists
type AttendanceStatusResponse struct {
	StudentID string  `json:"student_id"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
}

// AttendanceRecordResponse stored record
type AttendanceRecordResponse struct {
	ID        string  `json:"id"`
	StudentID string  `json:"student_id"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	UpdatedAt string  `json:"updated_at"`
}

// AttendanceRateResponse counts and rounded present percentage over a range
type AttendanceRateResponse struct {
	StudentID string `json:"student_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Late      int    `json:"late"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
}

// GroupAttendanceResponse month grid of a group
type GroupAttendanceResponse struct {
	GroupDayID string               `json:"group_day_id"`
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	ClassDates []string             `json:"class_dates"`
	Students   []GroupAttendanceRow `json:"students"`
}

// GroupAttendanceRow one student's statuses keyed by YYYY-MM-DD, every class date present
type GroupAttendanceRow struct {
	Student  StudentBrief      `json:"student"`
	Statuses map[string]string `json:"statuses"`
	Rate     int               `json:"rate"`
}

// ── Payment responses ──

// PaymentResponse payment row
type PaymentResponse struct {
	ID            string  `json:"id"`
	StudentID     string  `json:"student_id"`
	PaymentType   string  `json:"payment_type"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	Month         *int    `json:"month,omitempty"`
	Year          *int    `json:"year,omitempty"`
	BookName      *string `json:"book_name,omitempty"`
	ReceiptNumber *string `json:"receipt_number,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// MonthlyStatusResponse whether a month was paid
type MonthlyStatusResponse struct {
	StudentID string `json:"student_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	HasPaid   bool   `json:"has_paid"`
}

// AmountResponse resolved price
type AmountResponse struct {
	StudentID   string  `json:"student_id"`
	PaymentType string  `json:"payment_type"`
	Amount      float64 `json:"amount"`
}

// PaymentStatsResponse aggregate over a student's history
type PaymentStatsResponse struct {
	StudentID       string  `json:"student_id"`
	TotalPaid       float64 `json:"total_paid"`
	MonthlyPaidSum  float64 `json:"monthly_paid_sum"`
	BooksPaidSum    float64 `json:"books_paid_sum"`
	MonthlyCount    int     `json:"monthly_count"`
	BookCount       int     `json:"book_count"`
	LastPaymentDate *string `json:"last_payment_date"`
}

// PaymentSettingsResponse pricing row
type PaymentSettingsResponse struct {
	ID            string  `json:"id"`
	GradeID       string  `json:"grade_id"`
	TrackID       *string `json:"track_id,omitempty"`
	MonthlyAmount float64 `json:"monthly_amount"`
	BookAmount    float64 `json:"book_amount"`
}

// GroupPaymentsResponse month payment sheet of a group
type GroupPaymentsResponse struct {
	GroupDayID string            `json:"group_day_id"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Students   []GroupPaymentRow `json:"students"`
}

// GroupPaymentRow ExpectedAmount is empty when no pricing is configured
type GroupPaymentRow struct {
	Student        StudentBrief     `json:"student"`
	HasPaid        bool             `json:"has_paid"`
	ExpectedAmount *float64         `json:"expected_amount,omitempty"`
	Payment        *PaymentResponse `json:"payment,omitempty"`
}

// ── Homework responses ──

// HomeworkResponse assignment
type HomeworkResponse struct {
	ID            string  `json:"id"`
	GradeID       string  `json:"grade_id"`
	TrackID       *string `json:"track_id,omitempty"`
	GroupDayID    *string `json:"group_day_id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	DueDate       string  `json:"due_date"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// SubmissionResponse submission
type SubmissionResponse struct {
	ID            string  `json:"id"`
	HomeworkID    string  `json:"homework_id"`
	StudentID     string  `json:"student_id"`
	StudentName   string  `json:"student_name,omitempty"`
	AnswerText    string  `json:"answer_text"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	IsAccepted    *bool   `json:"is_accepted,omitempty"`
	Feedback      *string `json:"feedback,omitempty"`
	SubmittedAt   string  `json:"submitted_at"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
}

// StudentHomeworkItem assignment with the student's derived status
type StudentHomeworkItem struct {
	Homework         HomeworkResponse    `json:"homework"`
	Status           string              `json:"status"`
	SubmissionCount  int                 `json:"submission_count"`
	LatestSubmission *SubmissionResponse `json:"latest_submission,omitempty"`
}

// HomeworkDetailResponse assignment with submissions newest-first
type HomeworkDetailResponse struct {
	Homework    HomeworkResponse     `json:"homework"`
	Submissions []SubmissionResponse `json:"submissions"`
}
