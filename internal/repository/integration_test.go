//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
	"tutor-center/backend/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=tutor_center_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	// partial unique indexes live in the migrations, so apply them instead of AutoMigrate
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

type fixture struct {
	grade   *model.Grade
	track   *model.Track
	group   *model.GroupDay
	student *model.Student
}

// setupRoster creates a grade with one track, a group and one student, and
// returns a cleanup func that removes everything it created.
func setupRoster(t *testing.T) (*fixture, func()) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)
	suffix := time.Now().UnixNano()

	grade := &model.Grade{Name: fmt.Sprintf("Grade-%d", suffix), HasTracks: true}
	require.NoError(t, repo.Grade.Create(ctx, grade))

	track := &model.Track{GradeID: grade.GradeID, Name: "Scientific"}
	require.NoError(t, repo.Track.Create(ctx, track))

	group := &model.GroupDay{
		GradeID:   grade.GradeID,
		TrackID:   &track.TrackID,
		FirstDay:  int(time.Saturday),
		SecondDay: int(time.Tuesday),
		TimeSlot:  "4:00 PM",
	}
	require.NoError(t, repo.GroupDay.Create(ctx, group))

	user := &model.User{
		UserID:       uuid.NewString(),
		Email:        fmt.Sprintf("student%d@example.com", suffix),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
		IsActive:     true,
	}
	student := &model.Student{
		FullName:    "Test Student",
		Phone:       "0100",
		ParentPhone: "0101",
		GradeID:     grade.GradeID,
		TrackID:     &track.TrackID,
		GroupDayID:  group.GroupDayID,
		IsActive:    true,
	}
	require.NoError(t, repo.Student.CreateWithAccount(ctx, user, student))

	cleanup := func() {
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.HomeworkSubmission{})
		testDB.Where("grade_id = ?", grade.GradeID).Delete(&model.Homework{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.AttendanceRecord{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Payment{})
		testDB.Where("grade_id = ?", grade.GradeID).Delete(&model.PaymentSettings{})
		testDB.Where("student_id = ?", student.StudentID).Delete(&model.Student{})
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
		testDB.Where("group_day_id = ?", group.GroupDayID).Delete(&model.GroupDay{})
		testDB.Where("track_id = ?", track.TrackID).Delete(&model.Track{})
		testDB.Where("grade_id = ?", grade.GradeID).Delete(&model.Grade{})
	}
	return &fixture{grade: grade, track: track, group: group, student: student}, cleanup
}

// ═══════════════════════════════════════════════════════════
// Roster
// ═══════════════════════════════════════════════════════════

func TestStudent_CreateWithAccount_SharesID(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	user, err := repo.User.GetByID(ctx, f.student.StudentID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.Role)

	got, err := repo.Student.GetByID(ctx, f.student.StudentID)
	require.NoError(t, err)
	require.NotNil(t, got.Grade)
	require.NotNil(t, got.GroupDay)
	assert.Equal(t, f.grade.Name, got.Grade.Name)
}

func TestStudent_Deactivate_HidesFromActiveList(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	active, err := repo.Student.ListActive(ctx, model.StudentFilter{GroupDayID: f.group.GroupDayID})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, repo.Student.Deactivate(ctx, f.student.StudentID, f.student.StudentID))

	active, err = repo.Student.ListActive(ctx, model.StudentFilter{GroupDayID: f.group.GroupDayID})
	require.NoError(t, err)
	assert.Empty(t, active)

	user, err := repo.User.GetByID(ctx, f.student.StudentID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

// ═══════════════════════════════════════════════════════════
// Attendance
// ═══════════════════════════════════════════════════════════

func TestAttendance_UpsertKeepsOneRowPerDay(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)

	for _, st := range []model.AttendanceStatus{model.AttendancePresent, model.AttendanceLate, model.AttendanceAbsent} {
		_, err := repo.Attendance.Upsert(ctx, &model.AttendanceRecord{
			StudentID: f.student.StudentID,
			Date:      datatypes.Date(day),
			Status:    st,
		})
		require.NoError(t, err)
	}

	rows, err := repo.Attendance.ListByStudent(ctx, f.student.StudentID, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.AttendanceAbsent, rows[0].Status)
}

// ═══════════════════════════════════════════════════════════
// Payments
// ═══════════════════════════════════════════════════════════

func TestPayment_MonthlyUpsertReplaces(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	year, month := 2025, 9

	for _, amount := range []float64{300, 350} {
		_, err := repo.Payment.UpsertMonthly(ctx, &model.Payment{
			StudentID:   f.student.StudentID,
			PaymentType: model.PaymentMonthly,
			Amount:      amount,
			PaymentDate: datatypes.Date(time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)),
			Year:        &year,
			Month:       &month,
		})
		require.NoError(t, err)
	}

	rows, err := repo.Payment.ListByStudent(ctx, f.student.StudentID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 350.0, rows[0].Amount)
}

func TestPayment_BookAppends(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	name := "Algebra"

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Payment.Create(ctx, &model.Payment{
			StudentID:   f.student.StudentID,
			PaymentType: model.PaymentBook,
			Amount:      120,
			PaymentDate: datatypes.Date(time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)),
			BookName:    &name,
		}))
	}

	rows, err := repo.Payment.ListByStudent(ctx, f.student.StudentID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPaymentSettings_UpsertReplacesPerTrack(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.PaymentSettings.Upsert(ctx, &model.PaymentSettings{GradeID: f.grade.GradeID, MonthlyAmount: 300, BookAmount: 100}))
	require.NoError(t, repo.PaymentSettings.Upsert(ctx, &model.PaymentSettings{GradeID: f.grade.GradeID, TrackID: &f.track.TrackID, MonthlyAmount: 400, BookAmount: 150}))
	require.NoError(t, repo.PaymentSettings.Upsert(ctx, &model.PaymentSettings{GradeID: f.grade.GradeID, TrackID: &f.track.TrackID, MonthlyAmount: 450, BookAmount: 150}))

	settings, err := repo.PaymentSettings.ListByGrade(ctx, f.grade.GradeID)
	require.NoError(t, err)
	require.Len(t, settings, 2)

	resolved := model.ResolvePricing(settings, &f.track.TrackID)
	require.NotNil(t, resolved)
	assert.Equal(t, 450.0, resolved.MonthlyAmount)
}

// ═══════════════════════════════════════════════════════════
// Homework
// ═══════════════════════════════════════════════════════════

func TestHomework_ListForStudentAndCascade(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	other := &model.GroupDay{GradeID: f.grade.GradeID, FirstDay: int(time.Sunday), SecondDay: int(time.Wednesday), TimeSlot: "6:00 PM"}
	require.NoError(t, repo.GroupDay.Create(ctx, other))
	defer func() {
		testDB.Where("grade_id = ?", f.grade.GradeID).Delete(&model.Homework{})
		testDB.Where("group_day_id = ?", other.GroupDayID).Delete(&model.GroupDay{})
	}()

	gradeWide := &model.Homework{GradeID: f.grade.GradeID, Title: "All", Description: "d", DueDate: time.Now().Add(24 * time.Hour)}
	otherOnly := &model.Homework{GradeID: f.grade.GradeID, GroupDayID: &other.GroupDayID, Title: "Other", Description: "d", DueDate: time.Now().Add(24 * time.Hour)}
	require.NoError(t, repo.Homework.Create(ctx, gradeWide))
	require.NoError(t, repo.Homework.Create(ctx, otherOnly))

	list, err := repo.Homework.ListForStudent(ctx, f.student)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, gradeWide.HomeworkID, list[0].HomeworkID)

	sub := &model.HomeworkSubmission{HomeworkID: gradeWide.HomeworkID, StudentID: f.student.StudentID, AnswerText: "42"}
	require.NoError(t, repo.Submission.Create(ctx, sub))

	n, err := repo.Homework.Delete(ctx, gradeWide.HomeworkID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.Submission.GetByID(ctx, sub.SubmissionID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// ═══════════════════════════════════════════════════════════
// Transactions
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	f, cleanup := setupRoster(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	hw := &model.Homework{GradeID: f.grade.GradeID, Title: "Tx", Description: "d", DueDate: time.Now()}
	if err := repo.WithTx(tx).Homework.Create(ctx, hw); err != nil {
		tx.Rollback()
		t.Fatalf("create inside transaction: %v", err)
	}
	tx.Rollback()

	_, err = repo.Homework.GetByID(ctx, hw.HomeworkID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
