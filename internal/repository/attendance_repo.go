package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutor-center/backend/internal/model"
)

// AttendanceRepository attendance fact data access
type AttendanceRepository interface {
	Get(ctx context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error)
	// Upsert inserts or updates in place the record keyed by (student_id, date)
	// in a single statement and returns the stored row.
	Upsert(ctx context.Context, record *model.AttendanceRecord) (*model.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error)
	ListByStudents(ctx context.Context, studentIDs []string, from, to time.Time) ([]model.AttendanceRecord, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Get(ctx context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, datatypes.Date(date)).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) Upsert(ctx context.Context, record *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     record.Status,
				"notes":      record.Notes,
				"updated_by": record.UpdatedBy,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(record).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, record.StudentID, time.Time(record.Date))
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date BETWEEN ? AND ?", studentID, datatypes.Date(from), datatypes.Date(to)).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByStudents(ctx context.Context, studentIDs []string, from, to time.Time) ([]model.AttendanceRecord, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id IN ? AND date BETWEEN ? AND ?", studentIDs, datatypes.Date(from), datatypes.Date(to)).
		Order("date ASC").
		Find(&records).Error
	return records, err
}
