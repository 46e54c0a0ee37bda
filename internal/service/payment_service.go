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

// PaymentService tuition and book payments, and their pricing
type PaymentService interface {
	HasPaidMonthly(ctx context.Context, actor dto.Actor, studentID string, year int, month time.Month) (*dto.MonthlyStatusResponse, error)
	// RecordMonthlyPayment inserts or overwrites the single row of (student, year, month).
	RecordMonthlyPayment(ctx context.Context, actor dto.Actor, req *dto.RecordMonthlyPaymentRequest) (*dto.PaymentResponse, error)
	// RecordBookPayment always appends a new row.
	RecordBookPayment(ctx context.Context, actor dto.Actor, req *dto.RecordBookPaymentRequest) (*dto.PaymentResponse, error)
	DeletePayment(ctx context.Context, actor dto.Actor, paymentID string) error
	ResolveAmount(ctx context.Context, actor dto.Actor, studentID string, paymentType model.PaymentType) (*dto.AmountResponse, error)
	SetPaymentSettings(ctx context.Context, actor dto.Actor, req *dto.PaymentSettingsRequest) (*dto.PaymentSettingsResponse, error)
	MonthlyPaymentsForGroup(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*dto.GroupPaymentsResponse, error)
	PaymentStats(ctx context.Context, actor dto.Actor, studentID string) (*dto.PaymentStatsResponse, error)
	StudentPayments(ctx context.Context, actor dto.Actor, studentID string) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	clock  Clock
	logger *zap.Logger
}

// NewPaymentService creates a PaymentService
func NewPaymentService(repo *repository.Repository, clock Clock, logger *zap.Logger) PaymentService {
	return &paymentService{repo: repo, clock: clock, logger: logger}
}

// ────────────────────── Monthly ──────────────────────

func (s *paymentService) HasPaidMonthly(ctx context.Context, actor dto.Actor, studentID string, year int, month time.Month) (*dto.MonthlyStatusResponse, error) {
	if err := requireStudentAccess(actor, studentID); err != nil {
		return nil, err
	}

	if _, err := findStudent(ctx, s.repo, s.logger, studentID); err != nil {
		return nil, err
	}

	resp := &dto.MonthlyStatusResponse{StudentID: studentID, Year: year, Month: int(month)}
	_, err := database.RetryRead(ctx, func(ctx context.Context) (*model.Payment, error) {
		return s.repo.Payment.FindMonthly(ctx, studentID, year, int(month))
	})
	switch {
	case err == nil:
		resp.HasPaid = true
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, storeError(s.logger, "find monthly payment", err, zap.String("student_id", studentID))
	}
	return resp, nil
}

func (s *paymentService) RecordMonthlyPayment(ctx context.Context, actor dto.Actor, req *dto.RecordMonthlyPaymentRequest) (*dto.PaymentResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	student, err := findActiveStudent(ctx, s.repo, s.logger, req.StudentID)
	if err != nil {
		return nil, err
	}

	amount, err := s.amountOrPrice(ctx, student, req.Amount, model.PaymentMonthly)
	if err != nil {
		return nil, err
	}
	paidOn, err := s.paymentDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	year, month := req.Year, req.Month
	payment := &model.Payment{
		StudentID:     student.StudentID,
		PaymentType:   model.PaymentMonthly,
		Amount:        amount,
		PaymentDate:   datatypes.Date(paidOn),
		Year:          &year,
		Month:         &month,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	}
	payment.Stamp(actor.ID)

	stored, err := s.repo.Payment.UpsertMonthly(ctx, payment)
	if err != nil {
		return nil, storeError(s.logger, "upsert monthly payment", err,
			zap.String("student_id", student.StudentID), zap.Int("year", year), zap.Int("month", month))
	}

	resp := toPaymentResponse(stored)
	return &resp, nil
}

// ────────────────────── Book ──────────────────────

func (s *paymentService) RecordBookPayment(ctx context.Context, actor dto.Actor, req *dto.RecordBookPaymentRequest) (*dto.PaymentResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	student, err := findActiveStudent(ctx, s.repo, s.logger, req.StudentID)
	if err != nil {
		return nil, err
	}

	amount, err := s.amountOrPrice(ctx, student, req.Amount, model.PaymentBook)
	if err != nil {
		return nil, err
	}
	paidOn, err := s.paymentDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	bookName := req.BookName
	payment := &model.Payment{
		StudentID:     student.StudentID,
		PaymentType:   model.PaymentBook,
		Amount:        amount,
		PaymentDate:   datatypes.Date(paidOn),
		BookName:      &bookName,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	}
	payment.Stamp(actor.ID)

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, storeError(s.logger, "create book payment", err, zap.String("student_id", student.StudentID))
	}

	resp := toPaymentResponse(payment)
	return &resp, nil
}

// DeletePayment hard delete, used for corrections.
func (s *paymentService) DeletePayment(ctx context.Context, actor dto.Actor, paymentID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.repo.Payment.Delete(ctx, paymentID)
	if err != nil {
		return storeError(s.logger, "delete payment", err, zap.String("payment_id", paymentID))
	}
	if n == 0 {
		return ErrPaymentNotFound
	}

	s.logger.Info("payment deleted", zap.String("payment_id", paymentID), zap.String("by", actor.ID))
	return nil
}

// ────────────────────── Pricing ──────────────────────

func (s *paymentService) ResolveAmount(ctx context.Context, actor dto.Actor, studentID string, paymentType model.PaymentType) (*dto.AmountResponse, error) {
	if err := requireStudentAccess(actor, studentID); err != nil {
		return nil, err
	}

	student, err := findStudent(ctx, s.repo, s.logger, studentID)
	if err != nil {
		return nil, err
	}

	settings, err := s.pricingFor(ctx, student)
	if err != nil {
		return nil, err
	}

	return &dto.AmountResponse{
		StudentID:   studentID,
		PaymentType: string(paymentType),
		Amount:      settings.AmountFor(paymentType),
	}, nil
}

// SetPaymentSettings applies to payments recorded afterwards; stored payments keep their amount.
func (s *paymentService) SetPaymentSettings(ctx context.Context, actor dto.Actor, req *dto.PaymentSettingsRequest) (*dto.PaymentSettingsResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	grade, err := lookup(ctx, s.logger, "get grade", ErrGradeNotFound, func(ctx context.Context) (*model.Grade, error) {
		return s.repo.Grade.GetByID(ctx, req.GradeID)
	}, zap.String("grade_id", req.GradeID))
	if err != nil {
		return nil, err
	}
	if req.TrackID != nil {
		track, err := lookup(ctx, s.logger, "get track", ErrTrackNotFound, func(ctx context.Context) (*model.Track, error) {
			return s.repo.Track.GetByID(ctx, *req.TrackID)
		}, zap.String("track_id", *req.TrackID))
		if err != nil {
			return nil, err
		}
		if track.GradeID != grade.GradeID {
			return nil, ErrTrackGradeMismatch
		}
	}

	settings := &model.PaymentSettings{
		GradeID:       grade.GradeID,
		TrackID:       req.TrackID,
		MonthlyAmount: *req.MonthlyAmount,
		BookAmount:    *req.BookAmount,
	}
	settings.Stamp(actor.ID)

	if err := s.repo.PaymentSettings.Upsert(ctx, settings); err != nil {
		return nil, storeError(s.logger, "upsert payment settings", err, zap.String("grade_id", grade.GradeID))
	}

	return &dto.PaymentSettingsResponse{
		ID:            settings.SettingID,
		GradeID:       settings.GradeID,
		TrackID:       settings.TrackID,
		MonthlyAmount: settings.MonthlyAmount,
		BookAmount:    settings.BookAmount,
	}, nil
}

// pricingFor the student's track row, else the grade default, else ErrPricingNotConfigured.
func (s *paymentService) pricingFor(ctx context.Context, student *model.Student) (*model.PaymentSettings, error) {
	settings, err := readList(ctx, s.logger, "list payment settings", func(ctx context.Context) ([]model.PaymentSettings, error) {
		return s.repo.PaymentSettings.ListByGrade(ctx, student.GradeID)
	}, zap.String("grade_id", student.GradeID))
	if err != nil {
		return nil, err
	}

	resolved := model.ResolvePricing(settings, student.TrackID)
	if resolved == nil {
		return nil, ErrPricingNotConfigured
	}
	return resolved, nil
}

// amountOrPrice the explicit amount, or the configured price when none is given.
func (s *paymentService) amountOrPrice(ctx context.Context, student *model.Student, amount *float64, t model.PaymentType) (float64, error) {
	if amount != nil {
		return *amount, nil
	}
	settings, err := s.pricingFor(ctx, student)
	if err != nil {
		return 0, err
	}
	return settings.AmountFor(t), nil
}

func (s *paymentService) paymentDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.clock.today(), nil
	}
	return model.ParseDate(raw)
}

// ────────────────────── Views ──────────────────────

// MonthlyPaymentsForGroup roster and month payments are read in one query each and
// pricing once per grade; a student without a row is unpaid.
func (s *paymentService) MonthlyPaymentsForGroup(ctx context.Context, actor dto.Actor, groupDayID string, year int, month time.Month) (*dto.GroupPaymentsResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	resp := &dto.GroupPaymentsResponse{
		GroupDayID: groupDayID,
		Year:       year,
		Month:      int(month),
		Students:   []dto.GroupPaymentRow{},
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
	gradeSeen := make(map[string]bool)
	var gradeIDs []string
	for i := range students {
		ids[i] = students[i].StudentID
		if !gradeSeen[students[i].GradeID] {
			gradeSeen[students[i].GradeID] = true
			gradeIDs = append(gradeIDs, students[i].GradeID)
		}
	}

	payments, err := readList(ctx, s.logger, "list group payments", func(ctx context.Context) ([]model.Payment, error) {
		return s.repo.Payment.ListMonthlyForStudents(ctx, ids, year, int(month))
	}, zap.String("group_day_id", groupDayID))
	if err != nil {
		return nil, err
	}
	paidBy := make(map[string]*model.Payment, len(payments))
	for i := range payments {
		paidBy[payments[i].StudentID] = &payments[i]
	}

	settings, err := readList(ctx, s.logger, "list payment settings", func(ctx context.Context) ([]model.PaymentSettings, error) {
		return s.repo.PaymentSettings.ListByGrades(ctx, gradeIDs)
	}, zap.String("group_day_id", groupDayID))
	if err != nil {
		return nil, err
	}
	settingsByGrade := make(map[string][]model.PaymentSettings)
	for _, ps := range settings {
		settingsByGrade[ps.GradeID] = append(settingsByGrade[ps.GradeID], ps)
	}

	for i := range students {
		st := &students[i]
		row := dto.GroupPaymentRow{Student: toStudentBrief(st)}
		if p, ok := paidBy[st.StudentID]; ok {
			pr := toPaymentResponse(p)
			row.HasPaid = true
			row.Payment = &pr
		}
		if price := model.ResolvePricing(settingsByGrade[st.GradeID], st.TrackID); price != nil {
			amount := price.MonthlyAmount
			row.ExpectedAmount = &amount
		}
		resp.Students = append(resp.Students, row)
	}

	return resp, nil
}

func (s *paymentService) PaymentStats(ctx context.Context, actor dto.Actor, studentID string) (*dto.PaymentStatsResponse, error) {
	payments, err := s.history(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	summary := model.SummarizePayments(payments)
	resp := &dto.PaymentStatsResponse{
		StudentID:      studentID,
		TotalPaid:      summary.TotalPaid,
		MonthlyPaidSum: summary.MonthlyPaidSum,
		BooksPaidSum:   summary.BooksPaidSum,
		MonthlyCount:   summary.MonthlyCount,
		BookCount:      summary.BookCount,
	}
	if summary.LastPaymentDate != nil {
		last := summary.LastPaymentDate.Format(model.DateLayout)
		resp.LastPaymentDate = &last
	}
	return resp, nil
}

func (s *paymentService) StudentPayments(ctx context.Context, actor dto.Actor, studentID string) ([]dto.PaymentResponse, error) {
	payments, err := s.history(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, toPaymentResponse(&payments[i]))
	}
	return result, nil
}

func (s *paymentService) history(ctx context.Context, actor dto.Actor, studentID string) ([]model.Payment, error) {
	if err := requireStudentAccess(actor, studentID); err != nil {
		return nil, err
	}
	if _, err := findStudent(ctx, s.repo, s.logger, studentID); err != nil {
		return nil, err
	}

	return readList(ctx, s.logger, "list payments", func(ctx context.Context) ([]model.Payment, error) {
		return s.repo.Payment.ListByStudent(ctx, studentID)
	}, zap.String("student_id", studentID))
}

// ────────────────────── mapping ──────────────────────

func toPaymentResponse(p *model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.PaymentID,
		StudentID:     p.StudentID,
		PaymentType:   string(p.PaymentType),
		Amount:        p.Amount,
		PaymentDate:   p.PaidOn().Format(model.DateLayout),
		Month:         p.Month,
		Year:          p.Year,
		BookName:      p.BookName,
		ReceiptNumber: p.ReceiptNumber,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(timeLayout),
	}
}
