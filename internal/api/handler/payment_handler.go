package handler

import (
	"github.com/gin-gonic/gin"

	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/response"
)

// PaymentHandler HTTP handlers of the payment module
type PaymentHandler struct {
	paymentSvc service.PaymentService
}

// NewPaymentHandler creates a PaymentHandler
func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// ────────────────────── Student views ──────────────────────

// StudentPayments GET /api/v1/payments/students/:id
func (h *PaymentHandler) StudentPayments(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.paymentSvc.StudentPayments(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Stats GET /api/v1/payments/students/:id/stats
func (h *PaymentHandler) Stats(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.paymentSvc.PaymentStats(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// MonthlyStatus GET /api/v1/payments/students/:id/monthly?year=&month=
func (h *PaymentHandler) MonthlyStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.paymentSvc.HasPaidMonthly(c.Request.Context(), actor, id, year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Amount GET /api/v1/payments/students/:id/amount?type=monthly|book
func (h *PaymentHandler) Amount(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var q dto.AmountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.paymentSvc.ResolveAmount(c.Request.Context(), actor, id, model.PaymentType(q.Type))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── Recording ──────────────────────

// RecordMonthly POST /api/v1/payments/monthly
func (h *PaymentHandler) RecordMonthly(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.RecordMonthlyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.paymentSvc.RecordMonthlyPayment(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// RecordBook POST /api/v1/payments/book
func (h *PaymentHandler) RecordBook(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.RecordBookPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.paymentSvc.RecordBookPayment(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Delete DELETE /api/v1/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.paymentSvc.DeletePayment(c.Request.Context(), actor, id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── Admin ──────────────────────

// SetSettings PUT /api/v1/payment-settings
func (h *PaymentHandler) SetSettings(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.PaymentSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.paymentSvc.SetPaymentSettings(c.Request.Context(), actor, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// GroupMonth GET /api/v1/payments/groups/:id?year=&month=
func (h *PaymentHandler) GroupMonth(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	year, month, ok := bindMonth(c)
	if !ok {
		return
	}

	result, err := h.paymentSvc.MonthlyPaymentsForGroup(c.Request.Context(), actor, c.Param("id"), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}
