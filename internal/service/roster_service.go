package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
)

// RosterService grades, tracks, group days and students
type RosterService interface {
	CreateGrade(ctx context.Context, actor dto.Actor, req *dto.CreateGradeRequest) (*dto.GradeResponse, error)
	ListGrades(ctx context.Context) ([]dto.GradeResponse, error)
	CreateTrack(ctx context.Context, actor dto.Actor, gradeID string, req *dto.CreateTrackRequest) (*dto.TrackResponse, error)
	ListTracks(ctx context.Context, gradeID string) ([]dto.TrackResponse, error)
	CreateGroupDay(ctx context.Context, actor dto.Actor, req *dto.CreateGroupDayRequest) (*dto.GroupDayResponse, error)
	ListGroupDays(ctx context.Context, req *dto.GroupDayListRequest) ([]dto.GroupDayResponse, error)
	GetGroupDay(ctx context.Context, id string) (*dto.GroupDayResponse, error)
	// GroupDatesForMonth class dates of the group in the month; an unknown group has none.
	GroupDatesForMonth(ctx context.Context, groupDayID string, year int, month time.Month) (*dto.GroupDatesResponse, error)

	ListActiveStudents(ctx context.Context, actor dto.Actor, req *dto.StudentListRequest) ([]dto.StudentResponse, error)
	GetStudent(ctx context.Context, actor dto.Actor, id string) (*dto.StudentResponse, error)
	MyProfile(ctx context.Context, actor dto.Actor) (*dto.StudentResponse, error)
	CreateStudent(ctx context.Context, actor dto.Actor, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, actor dto.Actor, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Deactivate(ctx context.Context, actor dto.Actor, id string) error
}

type rosterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRosterService creates a RosterService
func NewRosterService(repo *repository.Repository, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, logger: logger}
}

// ────────────────────── Grades & tracks ──────────────────────

func (s *rosterService) CreateGrade(ctx context.Context, actor dto.Actor, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	grade := &model.Grade{Name: strings.TrimSpace(req.Name), HasTracks: req.HasTracks}
	grade.Stamp(actor.ID)
	if err := s.repo.Grade.Create(ctx, grade); err != nil {
		return nil, storeError(s.logger, "create grade", err)
	}

	resp := toGradeResponse(grade)
	return &resp, nil
}

func (s *rosterService) ListGrades(ctx context.Context) ([]dto.GradeResponse, error) {
	grades, err := readList(ctx, s.logger, "list grades", s.repo.Grade.List)
	if err != nil {
		return nil, err
	}

	result := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		result = append(result, toGradeResponse(&grades[i]))
	}
	return result, nil
}

func (s *rosterService) CreateTrack(ctx context.Context, actor dto.Actor, gradeID string, req *dto.CreateTrackRequest) (*dto.TrackResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	grade, err := s.getGrade(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if !grade.HasTracks {
		return nil, ErrGradeHasNoTracks
	}

	track := &model.Track{GradeID: grade.GradeID, Name: strings.TrimSpace(req.Name)}
	track.Stamp(actor.ID)
	if err := s.repo.Track.Create(ctx, track); err != nil {
		return nil, storeError(s.logger, "create track", err, zap.String("grade_id", gradeID))
	}

	resp := toTrackResponse(track)
	return &resp, nil
}

func (s *rosterService) ListTracks(ctx context.Context, gradeID string) ([]dto.TrackResponse, error) {
	if _, err := s.getGrade(ctx, gradeID); err != nil {
		return nil, err
	}

	tracks, err := readList(ctx, s.logger, "list tracks", func(ctx context.Context) ([]model.Track, error) {
		return s.repo.Track.ListByGrade(ctx, gradeID)
	}, zap.String("grade_id", gradeID))
	if err != nil {
		return nil, err
	}

	result := make([]dto.TrackResponse, 0, len(tracks))
	for i := range tracks {
		result = append(result, toTrackResponse(&tracks[i]))
	}
	return result, nil
}

// ────────────────────── Group days ──────────────────────

func (s *rosterService) CreateGroupDay(ctx context.Context, actor dto.Actor, req *dto.CreateGroupDayRequest) (*dto.GroupDayResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if _, err := s.checkPlacement(ctx, req.GradeID, req.TrackID); err != nil {
		return nil, err
	}

	group := &model.GroupDay{
		GradeID:        req.GradeID,
		TrackID:        req.TrackID,
		FirstDay:       *req.FirstDay,
		SecondDay:      *req.SecondDay,
		IncludesFriday: req.IncludesFriday,
		TimeSlot:       strings.TrimSpace(req.TimeSlot),
	}
	group.Stamp(actor.ID)
	if err := s.repo.GroupDay.Create(ctx, group); err != nil {
		return nil, storeError(s.logger, "create group day", err, zap.String("grade_id", req.GradeID))
	}

	return s.GetGroupDay(ctx, group.GroupDayID)
}

func (s *rosterService) ListGroupDays(ctx context.Context, req *dto.GroupDayListRequest) ([]dto.GroupDayResponse, error) {
	groups, err := readList(ctx, s.logger, "list group days", func(ctx context.Context) ([]model.GroupDay, error) {
		return s.repo.GroupDay.List(ctx, req.GradeID, req.TrackID)
	})
	if err != nil {
		return nil, err
	}

	result := make([]dto.GroupDayResponse, 0, len(groups))
	for i := range groups {
		result = append(result, toGroupDayResponse(&groups[i]))
	}
	return result, nil
}

func (s *rosterService) GetGroupDay(ctx context.Context, id string) (*dto.GroupDayResponse, error) {
	group, err := lookup(ctx, s.logger, "get group day", ErrGroupDayNotFound, func(ctx context.Context) (*model.GroupDay, error) {
		return s.repo.GroupDay.GetByID(ctx, id)
	}, zap.String("group_day_id", id))
	if err != nil {
		return nil, err
	}

	resp := toGroupDayResponse(group)
	return &resp, nil
}

func (s *rosterService) GroupDatesForMonth(ctx context.Context, groupDayID string, year int, month time.Month) (*dto.GroupDatesResponse, error) {
	resp := &dto.GroupDatesResponse{GroupDayID: groupDayID, Year: year, Month: int(month), Dates: []string{}}

	group, err := findGroupDay(ctx, s.repo, s.logger, groupDayID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return resp, nil
	}

	for _, d := range group.ClassDatesInMonth(year, month) {
		resp.Dates = append(resp.Dates, d.Format(model.DateLayout))
	}
	return resp, nil
}

// ────────────────────── Students ──────────────────────

func (s *rosterService) ListActiveStudents(ctx context.Context, actor dto.Actor, req *dto.StudentListRequest) ([]dto.StudentResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	filter := model.StudentFilter{GradeID: req.GradeID, TrackID: req.TrackID, GroupDayID: req.GroupDayID}
	students, err := readList(ctx, s.logger, "list students", func(ctx context.Context) ([]model.Student, error) {
		return s.repo.Student.ListActive(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentResponse(&students[i]))
	}
	return result, nil
}

func (s *rosterService) GetStudent(ctx context.Context, actor dto.Actor, id string) (*dto.StudentResponse, error) {
	if err := requireStudentAccess(actor, id); err != nil {
		return nil, err
	}

	student, err := findStudent(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// MyProfile the calling student's current grade, track and group day.
func (s *rosterService) MyProfile(ctx context.Context, actor dto.Actor) (*dto.StudentResponse, error) {
	if actor.Role != model.RoleStudent {
		return nil, ErrNotStudentActor
	}
	return s.GetStudent(ctx, actor, actor.ID)
}

func (s *rosterService) CreateStudent(ctx context.Context, actor dto.Actor, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if err := s.checkStudentPlacement(ctx, req.GradeID, req.TrackID, req.GroupDayID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(s.logger, "check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
		IsActive:     true,
	}
	user.Stamp(actor.ID)

	student := &model.Student{
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       req.Phone,
		ParentPhone: req.ParentPhone,
		GradeID:     req.GradeID,
		TrackID:     req.TrackID,
		GroupDayID:  req.GroupDayID,
		IsActive:    true,
	}
	student.Stamp(actor.ID)

	if err := s.repo.Student.CreateWithAccount(ctx, user, student); err != nil {
		return nil, storeError(s.logger, "create student", err, zap.String("email", email))
	}

	s.logger.Info("student enrolled",
		zap.String("student_id", student.StudentID),
		zap.String("group_day_id", student.GroupDayID),
	)

	return s.GetStudent(ctx, actor, student.StudentID)
}

func (s *rosterService) UpdateStudent(ctx context.Context, actor dto.Actor, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	student, err := findStudent(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkStudentPlacement(ctx, req.GradeID, req.TrackID, req.GroupDayID); err != nil {
		return nil, err
	}

	student.FullName = strings.TrimSpace(req.FullName)
	student.Phone = req.Phone
	student.ParentPhone = req.ParentPhone
	student.GradeID = req.GradeID
	student.TrackID = req.TrackID
	student.GroupDayID = req.GroupDayID
	student.UpdatedBy = &actor.ID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		return nil, storeError(s.logger, "update student", err, zap.String("student_id", id))
	}

	return s.GetStudent(ctx, actor, id)
}

// Deactivate retires the student; attendance, payments and submissions stay.
func (s *rosterService) Deactivate(ctx context.Context, actor dto.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if _, err := findStudent(ctx, s.repo, s.logger, id); err != nil {
		return err
	}

	if err := s.repo.Student.Deactivate(ctx, id, actor.ID); err != nil {
		return storeError(s.logger, "deactivate student", err, zap.String("student_id", id))
	}

	s.logger.Info("student deactivated", zap.String("student_id", id), zap.String("by", actor.ID))
	return nil
}

// ────────────────────── placement checks ──────────────────────

func (s *rosterService) getGrade(ctx context.Context, id string) (*model.Grade, error) {
	return lookup(ctx, s.logger, "get grade", ErrGradeNotFound, func(ctx context.Context) (*model.Grade, error) {
		return s.repo.Grade.GetByID(ctx, id)
	}, zap.String("grade_id", id))
}

// checkPlacement the grade exists and the optional track belongs to it.
func (s *rosterService) checkPlacement(ctx context.Context, gradeID string, trackID *string) (*model.Grade, error) {
	grade, err := s.getGrade(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if trackID == nil {
		return grade, nil
	}

	track, err := lookup(ctx, s.logger, "get track", ErrTrackNotFound, func(ctx context.Context) (*model.Track, error) {
		return s.repo.Track.GetByID(ctx, *trackID)
	}, zap.String("track_id", *trackID))
	if err != nil {
		return nil, err
	}
	if track.GradeID != grade.GradeID {
		return nil, ErrTrackGradeMismatch
	}
	return grade, nil
}

// checkStudentPlacement track belongs to grade; the group belongs to the grade
// and, when it is track-scoped, to the student's track.
func (s *rosterService) checkStudentPlacement(ctx context.Context, gradeID string, trackID *string, groupDayID string) error {
	if _, err := s.checkPlacement(ctx, gradeID, trackID); err != nil {
		return err
	}

	group, err := lookup(ctx, s.logger, "get group day", ErrGroupDayNotFound, func(ctx context.Context) (*model.GroupDay, error) {
		return s.repo.GroupDay.GetByID(ctx, groupDayID)
	}, zap.String("group_day_id", groupDayID))
	if err != nil {
		return err
	}
	if group.GradeID != gradeID {
		return ErrGroupGradeMismatch
	}
	if group.TrackID != nil && !model.SameOptionalID(group.TrackID, trackID) {
		return ErrGroupTrackMismatch
	}
	return nil
}

// ────────────────────── mapping ──────────────────────

func toGradeResponse(g *model.Grade) dto.GradeResponse {
	tracks := make([]dto.TrackResponse, 0, len(g.Tracks))
	for i := range g.Tracks {
		tracks = append(tracks, toTrackResponse(&g.Tracks[i]))
	}
	return dto.GradeResponse{ID: g.GradeID, Name: g.Name, HasTracks: g.HasTracks, Tracks: tracks}
}

func toTrackResponse(t *model.Track) dto.TrackResponse {
	return dto.TrackResponse{ID: t.TrackID, GradeID: t.GradeID, Name: t.Name}
}

func toGroupDayResponse(g *model.GroupDay) dto.GroupDayResponse {
	resp := dto.GroupDayResponse{
		ID:             g.GroupDayID,
		GradeID:        g.GradeID,
		TrackID:        g.TrackID,
		FirstDay:       g.FirstDay,
		SecondDay:      g.SecondDay,
		IncludesFriday: g.IncludesFriday,
		TimeSlot:       g.TimeSlot,
		Label:          g.Label(),
	}
	if g.Grade != nil {
		resp.GradeName = g.Grade.Name
	}
	if g.Track != nil {
		resp.TrackName = g.Track.Name
	}
	return resp
}

func toStudentResponse(st *model.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:          st.StudentID,
		FullName:    st.FullName,
		Phone:       st.Phone,
		ParentPhone: st.ParentPhone,
		GradeID:     st.GradeID,
		TrackID:     st.TrackID,
		GroupDayID:  st.GroupDayID,
		IsActive:    st.IsActive,
		CreatedAt:   st.CreatedAt.Format(timeLayout),
	}
	if st.Grade != nil {
		resp.GradeName = st.Grade.Name
	}
	if st.Track != nil {
		resp.TrackName = st.Track.Name
	}
	if st.GroupDay != nil {
		resp.GroupDayLabel = st.GroupDay.Label()
	}
	return resp
}
