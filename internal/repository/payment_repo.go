package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutor-center/backend/internal/model"
)

// PaymentRepository payment fact data access
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	FindMonthly(ctx context.Context, studentID string, year, month int) (*model.Payment, error)
	// UpsertMonthly inserts or overwrites the monthly row for (student, year, month).
	UpsertMonthly(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	Create(ctx context.Context, payment *model.Payment) error
	Delete(ctx context.Context, id string) (int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Payment, error)
	ListMonthlyForStudents(ctx context.Context, studentIDs []string, year, month int) ([]model.Payment, error)
}

// PaymentSettingsRepository pricing data access
type PaymentSettingsRepository interface {
	ListByGrade(ctx context.Context, gradeID string) ([]model.PaymentSettings, error)
	ListByGrades(ctx context.Context, gradeIDs []string) ([]model.PaymentSettings, error)
	// Upsert replaces the row for (grade, track), where a nil track is the grade default.
	Upsert(ctx context.Context, settings *model.PaymentSettings) error
}

// ── Payment ──

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) FindMonthly(ctx context.Context, studentID string, year, month int) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND payment_type = ? AND year = ? AND month = ?",
			studentID, model.PaymentMonthly, year, month).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) UpsertMonthly(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "student_id"}, {Name: "year"}, {Name: "month"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "payment_type = 'monthly'"}}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":         payment.Amount,
				"payment_date":   payment.PaymentDate,
				"receipt_number": payment.ReceiptNumber,
				"notes":          payment.Notes,
				"updated_by":     payment.UpdatedBy,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).
		Create(payment).Error
	if err != nil {
		return nil, err
	}
	return r.FindMonthly(ctx, payment.StudentID, *payment.Year, *payment.Month)
}

func (r *paymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("payment_id = ?", id).
		Delete(&model.Payment{})
	return result.RowsAffected, result.Error
}

func (r *paymentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListMonthlyForStudents(ctx context.Context, studentIDs []string, year, month int) ([]model.Payment, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("student_id IN ? AND payment_type = ? AND year = ? AND month = ?",
			studentIDs, model.PaymentMonthly, year, month).
		Find(&payments).Error
	return payments, err
}

// ── PaymentSettings ──

type paymentSettingsRepo struct {
	db *gorm.DB
}

func NewPaymentSettingsRepo(db *gorm.DB) PaymentSettingsRepository {
	return &paymentSettingsRepo{db: db}
}

func (r *paymentSettingsRepo) ListByGrade(ctx context.Context, gradeID string) ([]model.PaymentSettings, error) {
	var settings []model.PaymentSettings
	err := r.db.WithContext(ctx).
		Where("grade_id = ?", gradeID).
		Find(&settings).Error
	return settings, err
}

func (r *paymentSettingsRepo) ListByGrades(ctx context.Context, gradeIDs []string) ([]model.PaymentSettings, error) {
	if len(gradeIDs) == 0 {
		return nil, nil
	}
	var settings []model.PaymentSettings
	err := r.db.WithContext(ctx).
		Where("grade_id IN ?", gradeIDs).
		Find(&settings).Error
	return settings, err
}

func (r *paymentSettingsRepo) Upsert(ctx context.Context, settings *model.PaymentSettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.PaymentSettings
		q := tx.Where("grade_id = ?", settings.GradeID)
		if settings.TrackID == nil {
			q = q.Where("track_id IS NULL")
		} else {
			q = q.Where("track_id = ?", *settings.TrackID)
		}

		err := q.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing).Error
		switch {
		case err == nil:
			settings.SettingID = existing.SettingID
			return tx.Model(&existing).Updates(map[string]interface{}{
				"monthly_amount": settings.MonthlyAmount,
				"book_amount":    settings.BookAmount,
				"updated_by":     settings.UpdatedBy,
				"updated_at":     gorm.Expr("NOW()"),
			}).Error
		case err == gorm.ErrRecordNotFound:
			return tx.Create(settings).Error
		default:
			return err
		}
	})
}
