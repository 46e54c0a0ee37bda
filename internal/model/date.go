package model

import "time"

// DateLayout wire and storage format of calendar dates
const DateLayout = "2006-01-02"

// CalendarDate truncates t to its calendar day, expressed at UTC midnight.
// Attendance and payment keys are compared in this form.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MonthRange first and last calendar day of a month
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
