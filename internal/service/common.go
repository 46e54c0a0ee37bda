package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
	"tutor-center/backend/pkg/database"
	pkgerrors "tutor-center/backend/pkg/errors"
)

// Clock returns the current instant in the center's timezone.
type Clock func() time.Time

// CenterClock wall clock in loc
func CenterClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// today calendar date of now in the center's timezone
func (c Clock) today() time.Time {
	return model.CalendarDate(c())
}

const timeLayout = time.RFC3339

// ── access checks ──

func requireAdmin(actor dto.Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

func requireStudentAccess(actor dto.Actor, studentID string) error {
	if !actor.CanAccessStudent(studentID) {
		return ErrForeignStudent
	}
	return nil
}

// ── store error classification ──

// storeError turns a repository failure into a domain error. Constraint
// violations become ErrConstraintViolated and connectivity failures
// ErrStoreUnavailable. Anything else is returned wrapped without a kind.
func storeError(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	switch {
	case database.IsConstraintViolation(err):
		logger.Warn(op+": constraint violated", append(fields, zap.Error(err))...)
		return ErrConstraintViolated
	case database.IsTransient(err):
		logger.Error(op+": store unavailable", append(fields, zap.Error(err))...)
		return pkgerrors.Unavailable(op, err)
	default:
		logger.Error(op+" failed", append(fields, zap.Error(err))...)
		return fmt.Errorf("%s: %w", op, err)
	}
}

// ── shared lookups ──

// lookup runs a retried read and maps a missing row to notFound.
func lookup[T any](ctx context.Context, logger *zap.Logger, op string, notFound error, read func(ctx context.Context) (T, error), fields ...zap.Field) (T, error) {
	v, err := database.RetryRead(ctx, read)
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, notFound
		}
		return zero, storeError(logger, op, err, fields...)
	}
	return v, nil
}

// readList runs a retried read of a collection.
func readList[T any](ctx context.Context, logger *zap.Logger, op string, read func(ctx context.Context) ([]T, error), fields ...zap.Field) ([]T, error) {
	v, err := database.RetryRead(ctx, read)
	if err != nil {
		return nil, storeError(logger, op, err, fields...)
	}
	return v, nil
}

func findStudent(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id string) (*model.Student, error) {
	return lookup(ctx, logger, "get student", ErrStudentNotFound, func(ctx context.Context) (*model.Student, error) {
		return repo.Student.GetByID(ctx, id)
	}, zap.String("student_id", id))
}

// findActiveStudent new fact rows may only reference active students.
func findActiveStudent(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id string) (*model.Student, error) {
	student, err := findStudent(ctx, repo, logger, id)
	if err != nil {
		return nil, err
	}
	if !student.IsActive {
		return nil, ErrStudentInactive
	}
	return student, nil
}

// findGroupDay returns nil without error when the group does not exist.
func findGroupDay(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id string) (*model.GroupDay, error) {
	group, err := lookup(ctx, logger, "get group day", ErrGroupDayNotFound, func(ctx context.Context) (*model.GroupDay, error) {
		return repo.GroupDay.GetByID(ctx, id)
	}, zap.String("group_day_id", id))
	if errors.Is(err, ErrGroupDayNotFound) {
		return nil, nil
	}
	return group, err
}

// ── response mapping ──

func toStudentBrief(s *model.Student) dto.StudentBrief {
	return dto.StudentBrief{ID: s.StudentID, FullName: s.FullName}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}
