package model

// Student enrolled student, table students. StudentID is shared with the login account.
// Never hard-deleted; IsActive=false retires the student while keeping history.
type Student struct {
	StudentID   string  `gorm:"type:uuid;primaryKey"        json:"student_id"`
	FullName    string  `gorm:"type:varchar(150);not null"  json:"full_name"`
	Phone       string  `gorm:"type:varchar(30);not null"   json:"phone"`
	ParentPhone string  `gorm:"type:varchar(30);not null"   json:"parent_phone"`
	GradeID     string  `gorm:"type:uuid;not null"          json:"grade_id"`
	TrackID     *string `gorm:"type:uuid"                   json:"track_id,omitempty"`
	GroupDayID  string  `gorm:"type:uuid;not null"          json:"group_day_id"`
	IsActive    bool    `gorm:"not null;default:true"       json:"is_active"`
	BaseModel

	Grade    *Grade    `gorm:"foreignKey:GradeID;references:GradeID"       json:"grade,omitempty"`
	Track    *Track    `gorm:"foreignKey:TrackID;references:TrackID"       json:"track,omitempty"`
	GroupDay *GroupDay `gorm:"foreignKey:GroupDayID;references:GroupDayID" json:"group_day,omitempty"`
}

func (Student) TableName() string { return "students" }

// StudentFilter roster query filters; empty fields are ignored.
type StudentFilter struct {
	GradeID    string
	TrackID    string
	GroupDayID string
}
