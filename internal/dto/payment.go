package dto

// ── Payment DTO ──

// RecordMonthlyPaymentRequest record (or overwrite) a month's tuition.
// Amount falls back to the configured price when omitted; PaymentDate to today.
type RecordMonthlyPaymentRequest struct {
	StudentID     string   `json:"student_id"     binding:"required,uuid"`
	Year          int      `json:"year"           binding:"required,min=2000,max=2100"`
	Month         int      `json:"month"          binding:"required,min=1,max=12"`
	Amount        *float64 `json:"amount"         binding:"omitempty,gte=0"`
	PaymentDate   string   `json:"payment_date"   binding:"omitempty,ymd"`
	ReceiptNumber *string  `json:"receipt_number" binding:"omitempty,max=50"`
	Notes         *string  `json:"notes"          binding:"omitempty,max=500"`
}

// RecordBookPaymentRequest record a book purchase
type RecordBookPaymentRequest struct {
	StudentID     string   `json:"student_id"     binding:"required,uuid"`
	BookName      string   `json:"book_name"      binding:"required,max=200"`
	Amount        *float64 `json:"amount"         binding:"omitempty,gte=0"`
	PaymentDate   string   `json:"payment_date"   binding:"omitempty,ymd"`
	ReceiptNumber *string  `json:"receipt_number" binding:"omitempty,max=50"`
	Notes         *string  `json:"notes"          binding:"omitempty,max=500"`
}

// PaymentSettingsRequest set pricing for a grade, or one of its tracks
type PaymentSettingsRequest struct {
	GradeID       string   `json:"grade_id"       binding:"required,uuid"`
	TrackID       *string  `json:"track_id"       binding:"omitempty,uuid"`
	MonthlyAmount *float64 `json:"monthly_amount" binding:"required,gte=0"`
	BookAmount    *float64 `json:"book_amount"    binding:"required,gte=0"`
}

// AmountQuery payment type to price
type AmountQuery struct {
	Type string `form:"type" binding:"required,oneof=monthly book"`
}
