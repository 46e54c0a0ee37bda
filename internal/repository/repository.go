package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository aggregate entry point of every repository
type Repository struct {
	db *gorm.DB

	User            UserRepository
	Grade           GradeRepository
	Track           TrackRepository
	GroupDay        GroupDayRepository
	Student         StudentRepository
	Attendance      AttendanceRepository
	Payment         PaymentRepository
	PaymentSettings PaymentSettingsRepository
	Homework        HomeworkRepository
	Submission      SubmissionRepository
}

// NewRepository creates the Repository aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		User:            NewUserRepo(db),
		Grade:           NewGradeRepo(db),
		Track:           NewTrackRepo(db),
		GroupDay:        NewGroupDayRepo(db),
		Student:         NewStudentRepo(db),
		Attendance:      NewAttendanceRepo(db),
		Payment:         NewPaymentRepo(db),
		PaymentSettings: NewPaymentSettingsRepo(db),
		Homework:        NewHomeworkRepo(db),
		Submission:      NewSubmissionRepo(db),
	}
}

// BeginTx starts a transaction
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a Repository whose members all run on tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// validID reports whether id can name a row. Every primary key is a UUID, so
// anything else is treated as missing instead of reaching Postgres.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
