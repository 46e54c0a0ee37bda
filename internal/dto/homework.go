package dto

import "time"

// ── Homework DTO ──

// CreateHomeworkRequest create an assignment
type CreateHomeworkRequest struct {
	GradeID       string    `json:"grade_id"       binding:"required,uuid"`
	TrackID       *string   `json:"track_id"       binding:"omitempty,uuid"`
	GroupDayID    *string   `json:"group_day_id"   binding:"omitempty,uuid"`
	Title         string    `json:"title"          binding:"required,max=200"`
	Description   string    `json:"description"    binding:"max=5000"`
	DueDate       time.Time `json:"due_date"       binding:"required"`
	AttachmentURL *string   `json:"attachment_url" binding:"omitempty,url,max=500"`
}

// HomeworkListRequest assignment filters
type HomeworkListRequest struct {
	GradeID    string `form:"grade_id"     binding:"omitempty,uuid"`
	TrackID    string `form:"track_id"     binding:"omitempty,uuid"`
	GroupDayID string `form:"group_day_id" binding:"omitempty,uuid"`
}

// SubmitHomeworkRequest submit an answer. StudentID defaults to the caller.
type SubmitHomeworkRequest struct {
	StudentID     string  `json:"student_id"     binding:"omitempty,uuid"`
	AnswerText    string  `json:"answer_text"    binding:"required,max=10000"`
	AttachmentURL *string `json:"attachment_url" binding:"omitempty,url,max=500"`
	Notes         *string `json:"notes"          binding:"omitempty,max=1000"`
}

// ReviewSubmissionRequest accept or reject a submission
type ReviewSubmissionRequest struct {
	Accepted *bool   `json:"accepted" binding:"required"`
	Feedback *string `json:"feedback" binding:"omitempty,max=2000"`
}
