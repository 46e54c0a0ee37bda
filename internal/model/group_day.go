package model

import "time"

// GroupDay cohort of a grade (optionally a track) meeting on a weekday pair,
// plus Friday when flagged, table group_days.
type GroupDay struct {
	GroupDayID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_day_id"`
	GradeID        string  `gorm:"type:uuid;not null"                             json:"grade_id"`
	TrackID        *string `gorm:"type:uuid"                                      json:"track_id,omitempty"`
	FirstDay       int     `gorm:"type:smallint;not null"                         json:"first_day"`  // time.Weekday, 0=Sunday
	SecondDay      int     `gorm:"type:smallint;not null"                         json:"second_day"` // time.Weekday
	IncludesFriday bool    `gorm:"not null;default:false"                         json:"includes_friday"`
	TimeSlot       string  `gorm:"type:varchar(50);not null"                      json:"time_slot"`
	BaseModel

	Grade *Grade `gorm:"foreignKey:GradeID;references:GradeID" json:"grade,omitempty"`
	Track *Track `gorm:"foreignKey:TrackID;references:TrackID" json:"track,omitempty"`
}

func (GroupDay) TableName() string { return "group_days" }

// MeetsOn reports whether the group holds class on weekday wd.
func (g *GroupDay) MeetsOn(wd time.Weekday) bool {
	if int(wd) == g.FirstDay || int(wd) == g.SecondDay {
		return true
	}
	return g.IncludesFriday && wd == time.Friday
}

// ClassDatesInMonth enumerates the month's calendar days and keeps those the
// group meets on, in ascending order.
func (g *GroupDay) ClassDatesInMonth(year int, month time.Month) []time.Time {
	first, last := MonthRange(year, month)
	dates := make([]time.Time, 0, 14)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if g.MeetsOn(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}

// Label short human name, e.g. "Sat/Tue 4:00 PM".
func (g *GroupDay) Label() string {
	label := shortWeekday(g.FirstDay) + "/" + shortWeekday(g.SecondDay)
	if g.IncludesFriday {
		label += "/Fri"
	}
	if g.TimeSlot != "" {
		label += " " + g.TimeSlot
	}
	return label
}

func shortWeekday(d int) string {
	if d < 0 || d > 6 {
		return "?"
	}
	return time.Weekday(d).String()[:3]
}
