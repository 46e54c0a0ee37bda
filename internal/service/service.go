package service

import (
	"go.uber.org/zap"

	"tutor-center/backend/config"
	"tutor-center/backend/internal/repository"
	"tutor-center/backend/pkg/jwt"
	"tutor-center/backend/pkg/redis"
)

// Service aggregate entry point of every service
type Service struct {
	Auth       AuthService
	Roster     RosterService
	Attendance AttendanceService
	Payment    PaymentService
	Homework   HomeworkService
	Export     ExportService
	Calendar   CalendarService
}

// NewService creates the Service aggregate. rdb may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	clock := CenterClock(cfg.Center.Location())

	attendance := NewAttendanceService(repo, logger)
	payment := NewPaymentService(repo, clock, logger)

	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, logger),
		Roster:     NewRosterService(repo, logger),
		Attendance: attendance,
		Payment:    payment,
		Homework:   NewHomeworkService(repo, clock, logger),
		Export:     NewExportService(repo, attendance, payment, logger),
		Calendar:   NewCalendarService(repo, clock, cfg.Center.Name, logger),
	}
}
