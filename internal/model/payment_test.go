package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func TestResolvePricing(t *testing.T) {
	science := "track-science"
	literary := "track-literary"

	defaultOnly := []PaymentSettings{{GradeID: "g2", MonthlyAmount: 300, BookAmount: 50}}
	got := ResolvePricing(defaultOnly, &science)
	require.NotNil(t, got)
	assert.Equal(t, 300.0, got.AmountFor(PaymentMonthly))

	withTrack := []PaymentSettings{
		{GradeID: "g2", MonthlyAmount: 300, BookAmount: 50},
		{GradeID: "g2", TrackID: strPtr(science), MonthlyAmount: 350, BookAmount: 70},
	}
	assert.Equal(t, 350.0, ResolvePricing(withTrack, &science).MonthlyAmount)
	assert.Equal(t, 300.0, ResolvePricing(withTrack, &literary).MonthlyAmount)
	assert.Equal(t, 300.0, ResolvePricing(withTrack, nil).MonthlyAmount)
	assert.Equal(t, 70.0, ResolvePricing(withTrack, &science).AmountFor(PaymentBook))

	trackOnly := []PaymentSettings{{GradeID: "g2", TrackID: strPtr(science), MonthlyAmount: 350}}
	assert.Nil(t, ResolvePricing(trackOnly, &literary))
	assert.Nil(t, ResolvePricing(nil, nil))
}

func TestSummarizePayments(t *testing.T) {
	month := func(m int) *int { return &m }
	year := 2025
	day := func(m time.Month, d int) datatypes.Date {
		return datatypes.Date(time.Date(2025, m, d, 0, 0, 0, 0, time.UTC))
	}

	payments := []Payment{
		{PaymentType: PaymentMonthly, Amount: 300, Month: month(1), Year: &year, PaymentDate: day(time.January, 3)},
		{PaymentType: PaymentMonthly, Amount: 300, Month: month(2), Year: &year, PaymentDate: day(time.February, 2)},
		{PaymentType: PaymentMonthly, Amount: 300, Month: month(4), Year: &year, PaymentDate: day(time.April, 5)},
		{PaymentType: PaymentBook, Amount: 80, BookName: strPtr("Physics"), PaymentDate: day(time.March, 9)},
	}

	s := SummarizePayments(payments)
	assert.Equal(t, 980.0, s.TotalPaid)
	assert.Equal(t, 900.0, s.MonthlyPaidSum)
	assert.Equal(t, 80.0, s.BooksPaidSum)
	assert.Equal(t, 3, s.MonthlyCount)
	assert.Equal(t, 1, s.BookCount)
	require.NotNil(t, s.LastPaymentDate)
	assert.Equal(t, time.April, s.LastPaymentDate.Month())

	empty := SummarizePayments(nil)
	assert.Zero(t, empty.TotalPaid)
	assert.Nil(t, empty.LastPaymentDate)
}
