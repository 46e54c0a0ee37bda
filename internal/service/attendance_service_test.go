package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	pkgerrors "tutor-center/backend/pkg/errors"
)

func setupAttendance(t *testing.T) (AttendanceService, *mockRepos, roster) {
	t.Helper()
	repo, m := newMockRepos()
	r := seedRoster(m)
	return NewAttendanceService(repo, zap.NewNop()), m, r
}

func TestGetStatus_UnmarkedWhenNoRecord(t *testing.T) {
	svc, _, r := setupAttendance(t)

	got, err := svc.GetStatus(context.Background(), adminActor, r.student.StudentID, day(2025, time.September, 2))
	require.NoError(t, err)
	assert.Equal(t, string(model.AttendanceUnmarked), got.Status)
	assert.Equal(t, "2025-09-02", got.Date)
}

func TestSetStatus_ThenGetStatusRoundTrip(t *testing.T) {
	svc, m, r := setupAttendance(t)
	ctx := context.Background()

	for _, status := range []string{"absent", "late", "present"} {
		_, err := svc.SetStatus(ctx, adminActor, r.student.StudentID, &dto.SetAttendanceRequest{Date: "2025-09-06", Status: status})
		require.NoError(t, err)

		got, err := svc.GetStatus(ctx, adminActor, r.student.StudentID, day(2025, time.September, 6))
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	// three writes for one (student, date) still leave a single record
	assert.Len(t, m.attendance.records, 1)
}

func TestSetStatus_RequiresAdmin(t *testing.T) {
	svc, m, r := setupAttendance(t)

	_, err := svc.SetStatus(context.Background(), studentActor(r.student.StudentID), r.student.StudentID,
		&dto.SetAttendanceRequest{Date: "2025-09-06", Status: "present"})

	assert.ErrorIs(t, err, ErrAdminOnly)
	assert.ErrorIs(t, err, pkgerrors.ErrScopeViolation)
	assert.Empty(t, m.attendance.records)
}

func TestSetStatus_UnknownStudent(t *testing.T) {
	svc, _, _ := setupAttendance(t)

	_, err := svc.SetStatus(context.Background(), adminActor, "ghost", &dto.SetAttendanceRequest{Date: "2025-09-06", Status: "present"})
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestSetStatus_InactiveStudentRejected(t *testing.T) {
	svc, m, r := setupAttendance(t)
	r.student.IsActive = false

	_, err := svc.SetStatus(context.Background(), adminActor, r.student.StudentID, &dto.SetAttendanceRequest{Date: "2025-09-06", Status: "present"})
	assert.ErrorIs(t, err, ErrStudentInactive)
	assert.ErrorIs(t, err, pkgerrors.ErrReferentialViolation)
	assert.Zero(t, m.attendance.upserts)
}

func TestSetStatus_StoreFailures(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantKind error
	}{
		{"constraint", &pgconn.PgError{Code: "23503"}, pkgerrors.ErrReferentialViolation},
		{"unavailable", driver.ErrBadConn, pkgerrors.ErrStoreUnavailable},
		{"other", errors.New("disk full"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m, r := setupAttendance(t)
			m.attendance.upsertErr = tt.storeErr

			_, err := svc.SetStatus(context.Background(), adminActor, r.student.StudentID,
				&dto.SetAttendanceRequest{Date: "2025-09-06", Status: "present"})
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, pkgerrors.KindOf(err))
		})
	}
}

func TestCycleStatus_ThreeClicksReturnToStart(t *testing.T) {
	svc, m, r := setupAttendance(t)
	ctx := context.Background()
	date := day(2025, time.September, 9)

	for _, start := range []model.AttendanceStatus{model.AttendanceAbsent, model.AttendancePresent, model.AttendanceLate} {
		m.attendance.put(r.student.StudentID, date, start)

		var last *dto.AttendanceRecordResponse
		for i := 0; i < 3; i++ {
			var err error
			last, err = svc.CycleStatus(ctx, adminActor, r.student.StudentID, date)
			require.NoError(t, err)
		}
		assert.Equal(t, string(start), last.Status, "start %s", start)
	}
}

func TestCycleStatus_UnmarkedBecomesPresent(t *testing.T) {
	svc, _, r := setupAttendance(t)

	got, err := svc.CycleStatus(context.Background(), adminActor, r.student.StudentID, day(2025, time.September, 9))
	require.NoError(t, err)
	assert.Equal(t, string(model.AttendancePresent), got.Status)
}

func TestCycleStatus_KeepsNotes(t *testing.T) {
	svc, _, r := setupAttendance(t)
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, adminActor, r.student.StudentID,
		&dto.SetAttendanceRequest{Date: "2025-09-09", Status: "absent", Notes: ptr("sick")})
	require.NoError(t, err)

	got, err := svc.CycleStatus(ctx, adminActor, r.student.StudentID, day(2025, time.September, 9))
	require.NoError(t, err)
	assert.Equal(t, "present", got.Status)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "sick", *got.Notes)
}

func TestAttendanceRate_ZeroWithoutRecords(t *testing.T) {
	svc, _, r := setupAttendance(t)

	got, err := svc.AttendanceRate(context.Background(), adminActor, r.student.StudentID,
		day(2025, time.September, 1), day(2025, time.September, 30))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rate)
	assert.Equal(t, 0, got.Total)
}

func TestAttendanceRate_CountsRange(t *testing.T) {
	svc, m, r := setupAttendance(t)
	id := r.student.StudentID
	m.attendance.put(id, day(2025, time.September, 2), model.AttendancePresent)
	m.attendance.put(id, day(2025, time.September, 6), model.AttendancePresent)
	m.attendance.put(id, day(2025, time.September, 9), model.AttendanceLate)
	m.attendance.put(id, day(2025, time.October, 4), model.AttendanceAbsent) // outside

	got, err := svc.AttendanceRate(context.Background(), studentActor(id), id,
		day(2025, time.September, 1), day(2025, time.September, 30))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Present)
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 0, got.Absent)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 67, got.Rate)
}

func TestAttendanceRate_InvertedRangeIsEmpty(t *testing.T) {
	svc, m, r := setupAttendance(t)
	m.attendance.put(r.student.StudentID, day(2025, time.September, 2), model.AttendancePresent)

	got, err := svc.AttendanceRate(context.Background(), adminActor, r.student.StudentID,
		day(2025, time.September, 30), day(2025, time.September, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 0, got.Rate)
}

func TestAttendanceHistory_StudentSeesOnlyThemselves(t *testing.T) {
	svc, _, r := setupAttendance(t)

	_, err := svc.StudentAttendanceHistory(context.Background(), studentActor(r.other.StudentID), r.student.StudentID,
		day(2025, time.September, 1), day(2025, time.September, 30))
	assert.ErrorIs(t, err, ErrForeignStudent)
}

func TestAttendanceHistory_NewestFirst(t *testing.T) {
	svc, m, r := setupAttendance(t)
	id := r.student.StudentID
	m.attendance.put(id, day(2025, time.September, 2), model.AttendancePresent)
	m.attendance.put(id, day(2025, time.September, 9), model.AttendanceAbsent)

	got, err := svc.StudentAttendanceHistory(context.Background(), studentActor(id), id,
		day(2025, time.September, 1), day(2025, time.September, 30))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-09-09", got[0].Date)
	assert.Equal(t, "2025-09-02", got[1].Date)
}

func TestGroupAttendanceForMonth(t *testing.T) {
	svc, m, r := setupAttendance(t)
	m.attendance.put(r.student.StudentID, day(2025, time.September, 2), model.AttendancePresent)
	m.attendance.put(r.student.StudentID, day(2025, time.September, 6), model.AttendanceAbsent)
	m.attendance.put(r.other.StudentID, day(2025, time.September, 2), model.AttendanceLate)

	got, err := svc.GroupAttendanceForMonth(context.Background(), adminActor, r.satTue.GroupDayID, 2025, time.September)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2025-09-02", "2025-09-06", "2025-09-09", "2025-09-13", "2025-09-16",
		"2025-09-20", "2025-09-23", "2025-09-27", "2025-09-30",
	}, got.ClassDates)
	require.Len(t, got.Students, 2)

	rows := make(map[string]dto.GroupAttendanceRow)
	for _, row := range got.Students {
		rows[row.Student.ID] = row
	}

	amira := rows[r.student.StudentID]
	assert.Equal(t, "present", amira.Statuses["2025-09-02"])
	assert.Equal(t, "absent", amira.Statuses["2025-09-06"])
	assert.Equal(t, "unmarked", amira.Statuses["2025-09-09"])
	assert.Len(t, amira.Statuses, len(got.ClassDates))
	assert.Equal(t, 50, amira.Rate)

	assert.Equal(t, "late", rows[r.other.StudentID].Statuses["2025-09-02"])
	assert.Equal(t, 0, rows[r.other.StudentID].Rate)
}

func TestGroupAttendanceForMonth_SkipsInactiveStudents(t *testing.T) {
	svc, _, r := setupAttendance(t)
	r.other.IsActive = false

	got, err := svc.GroupAttendanceForMonth(context.Background(), adminActor, r.satTue.GroupDayID, 2025, time.September)
	require.NoError(t, err)
	require.Len(t, got.Students, 1)
	assert.Equal(t, r.student.StudentID, got.Students[0].Student.ID)
}

func TestGroupAttendanceForMonth_UnknownGroupIsEmpty(t *testing.T) {
	svc, _, _ := setupAttendance(t)

	got, err := svc.GroupAttendanceForMonth(context.Background(), adminActor, "no-such-group", 2025, time.September)
	require.NoError(t, err)
	assert.Empty(t, got.ClassDates)
	assert.Empty(t, got.Students)
}

func TestGroupAttendanceForMonth_RetriesTransientRead(t *testing.T) {
	svc, m, r := setupAttendance(t)
	m.students.listErrs = []error{driver.ErrBadConn}

	got, err := svc.GroupAttendanceForMonth(context.Background(), adminActor, r.satTue.GroupDayID, 2025, time.September)
	require.NoError(t, err)
	assert.Len(t, got.Students, 2)
	assert.Equal(t, 1, m.students.listCall)
}

func TestGroupAttendanceForMonth_UnavailableAfterSecondFailure(t *testing.T) {
	svc, m, r := setupAttendance(t)
	m.students.listErrs = []error{driver.ErrBadConn, driver.ErrBadConn}

	_, err := svc.GroupAttendanceForMonth(context.Background(), adminActor, r.satTue.GroupDayID, 2025, time.September)
	assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
	assert.Equal(t, 2, m.students.listCall)
}
