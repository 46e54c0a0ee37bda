package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
)

var adminActor = dto.Actor{ID: "admin-1", Role: model.RoleAdmin}

func studentActor(id string) dto.Actor {
	return dto.Actor{ID: id, Role: model.RoleStudent}
}

// fixedClock always reports now.
func fixedClock(now time.Time) Clock {
	return func() time.Time { return now }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// roster "Grade 2" with Science and Literary tracks, a Sat/Tue group for the
// whole grade, a Science-only Sun/Wed group and one active student per group.
type roster struct {
	grade        *model.Grade
	science      *model.Track
	literary     *model.Track
	satTue       *model.GroupDay
	scienceGroup *model.GroupDay
	student      *model.Student // Science track, Sat/Tue group
	other        *model.Student // Literary track, Sat/Tue group
}

func seedRoster(m *mockRepos) roster {
	var r roster

	r.grade = &model.Grade{GradeID: "grade-2", Name: "Grade 2", HasTracks: true}
	m.grades.grades[r.grade.GradeID] = r.grade

	r.science = &model.Track{TrackID: "track-science", GradeID: r.grade.GradeID, Name: "Science"}
	r.literary = &model.Track{TrackID: "track-literary", GradeID: r.grade.GradeID, Name: "Literary"}
	m.tracks.tracks[r.science.TrackID] = r.science
	m.tracks.tracks[r.literary.TrackID] = r.literary

	r.satTue = &model.GroupDay{
		GroupDayID: "group-sat-tue",
		GradeID:    r.grade.GradeID,
		FirstDay:   int(time.Saturday),
		SecondDay:  int(time.Tuesday),
		TimeSlot:   "4:00 PM",
	}
	r.scienceGroup = &model.GroupDay{
		GroupDayID: "group-science",
		GradeID:    r.grade.GradeID,
		TrackID:    &r.science.TrackID,
		FirstDay:   int(time.Sunday),
		SecondDay:  int(time.Wednesday),
		TimeSlot:   "6:00 PM",
	}
	m.groups.groups[r.satTue.GroupDayID] = r.satTue
	m.groups.groups[r.scienceGroup.GroupDayID] = r.scienceGroup

	r.student = addStudent(m, "student-1", "Amira Hassan", r.grade.GradeID, &r.science.TrackID, r.satTue.GroupDayID)
	r.other = addStudent(m, "student-2", "Omar Khaled", r.grade.GradeID, &r.literary.TrackID, r.satTue.GroupDayID)
	return r
}

func addStudent(m *mockRepos, id, name, gradeID string, trackID *string, groupDayID string) *model.Student {
	st := &model.Student{
		StudentID:  id,
		FullName:   name,
		GradeID:    gradeID,
		TrackID:    trackID,
		GroupDayID: groupDayID,
		IsActive:   true,
	}
	m.students.students[id] = st
	m.users.users[id] = &model.User{UserID: id, Email: id + "@example.com", Role: model.RoleStudent, IsActive: true}
	return st
}

func addUser(m *mockRepos, email, password, role string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		UserID:       nextID("user"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	m.users.users[u.UserID] = u
	return u
}
