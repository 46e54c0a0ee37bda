package model

import (
	"fmt"
	"math"

	"gorm.io/datatypes"
)

// AttendanceStatus stored status of a (student, date) record
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"

	// AttendanceUnmarked is never stored: it stands for "no record" on read.
	AttendanceUnmarked AttendanceStatus = "unmarked"
)

// Valid reports whether s may be stored.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// ParseAttendanceStatus validates a stored status value.
func ParseAttendanceStatus(v string) (AttendanceStatus, error) {
	s := AttendanceStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid attendance status %q", v)
	}
	return s, nil
}

// NextStatus advances the one-click toggle: absent → present → late → absent.
// An unmarked student enters the cycle as if absent, so the first click marks present.
func NextStatus(current AttendanceStatus) AttendanceStatus {
	switch current {
	case AttendancePresent:
		return AttendanceLate
	case AttendanceLate:
		return AttendanceAbsent
	default:
		return AttendancePresent
	}
}

// AttendanceRecord one attendance fact, table attendance, unique on (student_id, date).
type AttendanceRecord struct {
	AttendanceID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	StudentID    string           `gorm:"type:uuid;not null"                             json:"student_id"`
	Date         datatypes.Date   `gorm:"type:date;not null"                             json:"date"`
	Status       AttendanceStatus `gorm:"type:varchar(10);not null"                      json:"status"`
	Notes        *string          `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel
}

func (AttendanceRecord) TableName() string { return "attendance" }

// DateKey YYYY-MM-DD of the record date
func (r *AttendanceRecord) DateKey() string {
	return datatypesDateKey(r.Date)
}

// AttendanceCounts tally of records over a range
type AttendanceCounts struct {
	Present int
	Absent  int
	Late    int
}

// Total number of records counted
func (c AttendanceCounts) Total() int { return c.Present + c.Absent + c.Late }

// Add counts one status; unmarked is ignored.
func (c *AttendanceCounts) Add(s AttendanceStatus) {
	switch s {
	case AttendancePresent:
		c.Present++
	case AttendanceAbsent:
		c.Absent++
	case AttendanceLate:
		c.Late++
	}
}

// RatePercent present share of all records, rounded to the nearest integer.
// Zero records yield 0.
func (c AttendanceCounts) RatePercent() int {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Present) * 100 / float64(total)))
}
