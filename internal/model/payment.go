package model

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentType kind of payment
type PaymentType string

const (
	PaymentMonthly PaymentType = "monthly"
	PaymentBook    PaymentType = "book"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	return t == PaymentMonthly || t == PaymentBook
}

// PaymentSettings pricing per grade, optionally per track, table payment_settings.
// A nil TrackID is the grade default for every track.
type PaymentSettings struct {
	SettingID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"setting_id"`
	GradeID       string  `gorm:"type:uuid;not null"                             json:"grade_id"`
	TrackID       *string `gorm:"type:uuid"                                      json:"track_id,omitempty"`
	MonthlyAmount float64 `gorm:"type:numeric(10,2);not null"                    json:"monthly_amount"`
	BookAmount    float64 `gorm:"type:numeric(10,2);not null"                    json:"book_amount"`
	BaseModel
}

func (PaymentSettings) TableName() string { return "payment_settings" }

// AmountFor price of the given payment type
func (s *PaymentSettings) AmountFor(t PaymentType) float64 {
	if t == PaymentBook {
		return s.BookAmount
	}
	return s.MonthlyAmount
}

// ResolvePricing picks the track-specific row for trackID, falling back to the
// grade default. Returns nil when neither exists. settings must all belong to one grade.
func ResolvePricing(settings []PaymentSettings, trackID *string) *PaymentSettings {
	var fallback *PaymentSettings
	for i := range settings {
		s := &settings[i]
		if s.TrackID == nil {
			fallback = s
			continue
		}
		if trackID != nil && *s.TrackID == *trackID {
			return s
		}
	}
	return fallback
}

// Payment money received from a student, table payments.
// Monthly rows are unique per (student, year, month); book rows append.
type Payment struct {
	PaymentID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`
	StudentID     string         `gorm:"type:uuid;not null"                             json:"student_id"`
	PaymentType   PaymentType    `gorm:"type:varchar(10);not null"                      json:"payment_type"`
	Amount        float64        `gorm:"type:numeric(10,2);not null"                    json:"amount"`
	PaymentDate   datatypes.Date `gorm:"type:date;not null"                             json:"payment_date"`
	Month         *int           `gorm:"type:smallint"                                  json:"month,omitempty"`
	Year          *int           `gorm:"type:smallint"                                  json:"year,omitempty"`
	BookName      *string        `gorm:"type:varchar(200)"                              json:"book_name,omitempty"`
	ReceiptNumber *string        `gorm:"type:varchar(50)"                               json:"receipt_number,omitempty"`
	Notes         *string        `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel
}

func (Payment) TableName() string { return "payments" }

// PaidOn payment date as a calendar date
func (p *Payment) PaidOn() time.Time {
	return CalendarDate(time.Time(p.PaymentDate))
}

// PaymentSummary aggregate over a student's payment history
type PaymentSummary struct {
	TotalPaid       float64
	MonthlyPaidSum  float64
	BooksPaidSum    float64
	MonthlyCount    int
	BookCount       int
	LastPaymentDate *time.Time
}

// SummarizePayments aggregates payments; no row means zero sums and no last date.
func SummarizePayments(payments []Payment) PaymentSummary {
	var s PaymentSummary
	for i := range payments {
		p := &payments[i]
		s.TotalPaid += p.Amount
		switch p.PaymentType {
		case PaymentMonthly:
			s.MonthlyPaidSum += p.Amount
			s.MonthlyCount++
		case PaymentBook:
			s.BooksPaidSum += p.Amount
			s.BookCount++
		}
		paid := p.PaidOn()
		if s.LastPaymentDate == nil || paid.After(*s.LastPaymentDate) {
			s.LastPaymentDate = &paid
		}
	}
	return s
}

func datatypesDateKey(d datatypes.Date) string {
	return CalendarDate(time.Time(d)).Format(DateLayout)
}
