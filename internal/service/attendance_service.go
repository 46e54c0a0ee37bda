package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
	"tutor-center/backend/pkg/database"
)

// AttendanceService per-date attendance marks and their aggregates
type AttendanceService interface {
	// GetStatus stored status, or unmarked when no record exists.
	GetStatus(ctx context.Context, actor dto.Actor, studentID string, date time.Time) (*dto.AttendanceStatusResponse, error)
	SetStatus(ctx context.Context, actor dto.Actor, studentID string, req *dto.SetAttendanceRequest) (*dto.AttendanceRecordResponse, error)
	// CycleStatus advances the one-click toggle and persists the result.
	CycleStatus(ctx context.Context, actor dto.Actor, studentID string, date time.Time) (*dto.AttendanceRecordResponse, error)
	AttendanceRate(ctx context.Context, actor dto.Actor, studentID string, from, to time.Time) (*dto.AttendanceRateResponse, error)
	StudentAttendanceHistory(ctx context.Context, actor dto.Actor, studentID string, from, to time.Time) ([]dto.AttendanceRecordResponse, error)
	// GroupAttendanceForMonth active roster of the group against its derived class dates.
	GroupAttendanceForMonth(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*dto.GroupAttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── single record ──────────────────────

func (s *attendanceService) GetStatus(ctx context.Context, actor dto.Actor, studentID string, date time.Time) (*dto.AttendanceStatusResponse, error) {
	if err := requireStudentAccess(actor, studentID); err != nil {
		return nil, err
	}
	if _, err := findStudent(ctx, s.repo, s.logger, studentID); err != nil {
		return nil, err
	}

	date = model.CalendarDate(date)
	record, err := s.current(ctx, studentID, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendanceStatusResponse{
		StudentID: studentID,
		Date:      date.Format(model.DateLayout),
		Status:    string(model.AttendanceUnmarked),
	}
	if record != nil {
		resp.Status = string(record.Status)
		resp.Notes = record.Notes
	}
	return resp, nil
}

func (s *attendanceService) SetStatus(ctx context.Context, actor dto.Actor, studentID string, req *dto.SetAttendanceRequest) (*dto.AttendanceRecordResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	status, err := model.ParseAttendanceStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if _, err := findActiveStudent(ctx, s.repo, s.logger, studentID); err != nil {
		return nil, err
	}

	return s.write(ctx, actor, studentID, date, status, req.Notes)
}

func (s *attendanceService) CycleStatus(ctx context.Context, actor dto.Actor, studentID string, date time.Time) (*dto.AttendanceRecordResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := findActiveStudent(ctx, s.repo, s.logger, studentID); err != nil {
		return nil, err
	}

	date = model.CalendarDate(date)
	record, err := s.current(ctx, studentID, date)
	if err != nil {
		return nil, err
	}

	current := model.AttendanceUnmarked
	var notes *string
	if record != nil {
		current = record.Status
		notes = record.Notes
	}

	return s.write(ctx, actor, studentID, date, model.NextStatus(current), notes)
}

// current the stored record, or nil when the student is unmarked on date.
func (s *attendanceService) current(ctx context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	record, err := database.RetryRead(ctx, func(ctx context.Context) (*model.AttendanceRecord, error) {
		return s.repo.Attendance.Get(ctx, studentID, date)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(s.logger, "get attendance", err,
			zap.String("student_id", studentID), zap.Time("date", date))
	}
	return record, nil
}

// write one upsert statement; never retried.
func (s *attendanceService) write(ctx context.Context, actor dto.Actor, studentID string, date time.Time, status model.AttendanceStatus, notes *string) (*dto.AttendanceRecordResponse, error) {
	record := &model.AttendanceRecord{
		StudentID: studentID,
		Date:      datatypes.Date(model.CalendarDate(date)),
		Status:    status,
		Notes:     notes,
	}
	record.Stamp(actor.ID)

	stored, err := s.repo.Attendance.Upsert(ctx, record)
	if err != nil {
		return nil, storeError(s.logger, "upsert attendance", err,
			zap.String("student_id", studentID), zap.Time("date", date))
	}

	resp := toAttendanceRecordResponse(stored)
	return &resp, nil
}

// ────────────────────── aggregates ──────────────────────

func (s *attendanceService) AttendanceRate(ctx context.Context, actor dto.Actor, studentID string, from, to time.Time) (*dto.AttendanceRateResponse, error) {
	records, err := s.history(ctx, actor, studentID, from, to)
	if err != nil {
		return nil, err
	}

	var counts model.AttendanceCounts
	for i := range records {
		counts.Add(records[i].Status)
	}

	return &dto.AttendanceRateResponse{
		StudentID: studentID,
		From:      model.CalendarDate(from).Format(model.DateLayout),
		To:        model.CalendarDate(to).Format(model.DateLayout),
		Present:   counts.Present,
		Absent:    counts.Absent,
		Late:      counts.Late,
		Total:     counts.Total(),
		Rate:      counts.RatePercent(),
	}, nil
}

func (s *attendanceService) StudentAttendanceHistory(ctx context.Context, actor dto.Actor, studentID string, from, to time.Time) ([]dto.AttendanceRecordResponse, error) {
	records, err := s.history(ctx, actor, studentID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, toAttendanceRecordResponse(&records[i]))
	}
	return result, nil
}

func (s *attendanceService) history(ctx context.Context, actor dto.Actor, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	if err := requireStudentAccess(actor, studentID); err != nil {
		return nil, err
	}
	if _, err := findStudent(ctx, s.repo, s.logger, studentID); err != nil {
		return nil, err
	}

	from, to = model.CalendarDate(from), model.CalendarDate(to)
	if from.After(to) {
		return nil, nil
	}

	return readList(ctx, s.logger, "list attendance", func(ctx context.Context) ([]model.AttendanceRecord, error) {
		return s.repo.Attendance.ListByStudent(ctx, studentID, from, to)
	}, zap.String("student_id", studentID))
}

func (s *attendanceService) GroupAttendanceForMonth(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*dto.GroupAttendanceResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	resp := &dto.GroupAttendanceResponse{
		GroupDayID: groupDayID,
		Year:       year,
		Month:      int(month),
		ClassDates: []string{},
		Students:   []dto.GroupAttendanceRow{},
	}

	group, err := findGroupDay(ctx, s.repo, s.logger, groupDayID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return resp, nil
	}

	classDates := group.ClassDatesInMonth(year, month)
	for _, d := range classDates {
		resp.ClassDates = append(resp.ClassDates, d.Format(model.DateLayout))
	}

	students, err := readList(ctx, s.logger, "list group roster", func(ctx context.Context) ([]model.Student, error) {
		return s.repo.Student.ListActive(ctx, model.StudentFilter{GroupDayID: groupDayID})
	}, zap.String("group_day_id", groupDayID))
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return resp, nil
	}

	ids := make([]string, len(students))
	for i := range students {
		ids[i] = students[i].StudentID
	}

	first, last := model.MonthRange(year, month)
	records, err := readList(ctx, s.logger, "list group attendance", func(ctx context.Context) ([]model.AttendanceRecord, error) {
		return s.repo.Attendance.ListByStudents(ctx, ids, first, last)
	}, zap.String("group_day_id", groupDayID))
	if err != nil {
		return nil, err
	}

	byStudent := make(map[string]map[string]model.AttendanceStatus, len(students))
	for i := range records {
		r := &records[i]
		if byStudent[r.StudentID] == nil {
			byStudent[r.StudentID] = make(map[string]model.AttendanceStatus)
		}
		byStudent[r.StudentID][r.DateKey()] = r.Status
	}

	for i := range students {
		st := &students[i]
		marks := byStudent[st.StudentID]
		row := dto.GroupAttendanceRow{
			Student:  toStudentBrief(st),
			Statuses: make(map[string]string, len(resp.ClassDates)),
		}

		var counts model.AttendanceCounts
		for _, key := range resp.ClassDates {
			status, ok := marks[key]
			if !ok {
				status = model.AttendanceUnmarked
			}
			row.Statuses[key] = string(status)
		}
		// the rate counts every record of the month, including marks on extra sessions
		for _, status := range marks {
			counts.Add(status)
		}
		row.Rate = counts.RatePercent()

		resp.Students = append(resp.Students, row)
	}

	return resp, nil
}

// ────────────────────── mapping ──────────────────────

func toAttendanceRecordResponse(r *model.AttendanceRecord) dto.AttendanceRecordResponse {
	return dto.AttendanceRecordResponse{
		ID:        r.AttendanceID,
		StudentID: r.StudentID,
		Date:      r.DateKey(),
		Status:    string(r.Status),
		Notes:     r.Notes,
		UpdatedAt: r.UpdatedAt.Format(timeLayout),
	}
}
