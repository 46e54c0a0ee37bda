package service

import (
	"errors"

	pkgerrors "tutor-center/backend/pkg/errors"
)

// ── Roster errors ──

var (
	ErrGradeNotFound      = pkgerrors.New(pkgerrors.ErrNotFound, "grade not found")
	ErrTrackNotFound      = pkgerrors.New(pkgerrors.ErrNotFound, "track not found")
	ErrGroupDayNotFound   = pkgerrors.New(pkgerrors.ErrNotFound, "group day not found")
	ErrStudentNotFound    = pkgerrors.New(pkgerrors.ErrNotFound, "student not found")
	ErrGradeHasNoTracks   = pkgerrors.New(pkgerrors.ErrReferentialViolation, "grade has no tracks")
	ErrTrackGradeMismatch = pkgerrors.New(pkgerrors.ErrReferentialViolation, "track does not belong to the grade")
	ErrGroupGradeMismatch = pkgerrors.New(pkgerrors.ErrReferentialViolation, "group day does not belong to the grade")
	ErrGroupTrackMismatch = pkgerrors.New(pkgerrors.ErrReferentialViolation, "group day does not belong to the track")
	ErrStudentInactive    = pkgerrors.New(pkgerrors.ErrReferentialViolation, "student is inactive")
	ErrEmailExists        = pkgerrors.New(pkgerrors.ErrReferentialViolation, "email already registered")
	ErrConstraintViolated = pkgerrors.New(pkgerrors.ErrReferentialViolation, "write violates a data constraint")
)

// ── Access errors ──

var (
	ErrAdminOnly          = pkgerrors.New(pkgerrors.ErrScopeViolation, "admin role required")
	ErrForeignStudent     = pkgerrors.New(pkgerrors.ErrScopeViolation, "cannot access another student")
	ErrNotStudentActor    = pkgerrors.New(pkgerrors.ErrScopeViolation, "caller is not a student")
	ErrHomeworkOutOfScope = pkgerrors.New(pkgerrors.ErrScopeViolation, "homework is not assigned to the student")
)

// ── Payment errors ──

var (
	ErrPaymentNotFound      = pkgerrors.New(pkgerrors.ErrNotFound, "payment not found")
	ErrPricingNotConfigured = pkgerrors.New(pkgerrors.ErrConfigMissing, "no pricing configured for the grade")
)

// ── Homework errors ──

var (
	ErrHomeworkNotFound   = pkgerrors.New(pkgerrors.ErrNotFound, "homework not found")
	ErrSubmissionNotFound = pkgerrors.New(pkgerrors.ErrNotFound, "submission not found")
)

// ── Auth errors ──

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = pkgerrors.New(pkgerrors.ErrNotFound, "user not found")
)

// ── Export errors ──

var ErrExportGenerateFail = errors.New("failed to generate export file")
