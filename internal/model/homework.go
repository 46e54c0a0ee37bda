package model

import "time"

// HomeworkStatus derived, never stored
type HomeworkStatus string

const (
	HomeworkPending   HomeworkStatus = "pending"
	HomeworkCompleted HomeworkStatus = "completed"
	HomeworkLate      HomeworkStatus = "late"
)

// Homework assignment scoped to a grade and optionally a track and/or group, table homework.
type Homework struct {
	HomeworkID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"homework_id"`
	GradeID       string    `gorm:"type:uuid;not null"                             json:"grade_id"`
	TrackID       *string   `gorm:"type:uuid"                                      json:"track_id,omitempty"`
	GroupDayID    *string   `gorm:"type:uuid"                                      json:"group_day_id,omitempty"`
	Title         string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description   string    `gorm:"type:text;not null"                             json:"description"`
	DueDate       time.Time `gorm:"not null"                                       json:"due_date"`
	AttachmentURL *string   `gorm:"type:varchar(500)"                              json:"attachment_url,omitempty"`
	BaseModel
}

func (Homework) TableName() string { return "homework" }

// Covers reports whether the assignment is addressed to the student.
func (h *Homework) Covers(s *Student) bool {
	if h.GradeID != s.GradeID {
		return false
	}
	if h.TrackID != nil && (s.TrackID == nil || *h.TrackID != *s.TrackID) {
		return false
	}
	if h.GroupDayID != nil && *h.GroupDayID != s.GroupDayID {
		return false
	}
	return true
}

// HomeworkSubmission a student's answer, table homework_submissions. Append-only;
// review fields are filled later by an admin.
type HomeworkSubmission struct {
	SubmissionID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	HomeworkID    string     `gorm:"type:uuid;not null"                             json:"homework_id"`
	StudentID     string     `gorm:"type:uuid;not null"                             json:"student_id"`
	AnswerText    string     `gorm:"type:text;not null"                             json:"answer_text"`
	AttachmentURL *string    `gorm:"type:varchar(500)"                              json:"attachment_url,omitempty"`
	Notes         *string    `gorm:"type:text"                                      json:"notes,omitempty"`
	IsAccepted    *bool      `json:"is_accepted,omitempty"`
	Feedback      *string    `gorm:"type:text"                                      json:"feedback,omitempty"`
	SubmittedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy    *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

func (HomeworkSubmission) TableName() string { return "homework_submissions" }

// DeriveHomeworkStatus completed if anything was submitted, otherwise late once
// the due date has passed, otherwise pending.
func DeriveHomeworkStatus(hw *Homework, submissions []HomeworkSubmission, now time.Time) HomeworkStatus {
	if len(submissions) > 0 {
		return HomeworkCompleted
	}
	if now.After(hw.DueDate) {
		return HomeworkLate
	}
	return HomeworkPending
}

// LatestSubmission most recent submission, or nil.
func LatestSubmission(submissions []HomeworkSubmission) *HomeworkSubmission {
	var latest *HomeworkSubmission
	for i := range submissions {
		if latest == nil || submissions[i].SubmittedAt.After(latest.SubmittedAt) {
			latest = &submissions[i]
		}
	}
	return latest
}
