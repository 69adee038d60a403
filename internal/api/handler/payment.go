package handler

import (
	"net/http"
	"time"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/platform"
)

type Payment struct {
	svc *core.PaymentService
}

func NewPayment(svc *core.PaymentService) *Payment {
	return &Payment{svc: svc}
}

// List godoc
//
//	@Summary		List payments
//	@Tags			Payments
//	@Security		BearerAuth
//	@Param			status		query		string	false	"pending, succeeded, failed or refunded"
//	@Param			method		query		string	false	"card, paypal, bank_transfer or cod"
//	@Param			order_id	query		string	false	"Order ID"
//	@Param			from		query		string	false	"Created on or after"
//	@Param			to			query		string	false	"Created on or before"
//	@Success		200			{object}	response.PageResponse{items=[]model.Payment}
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/admin/payments [get]
func (h *Payment) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at", "method", "order_id")
	if !ok {
		return
	}
	payments, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, payments, total, params.Page, params.PageSize)
}

func (h *Payment) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, p)
}

// Create records a payment collected outside a provider integration. A
// succeeded payment marks its order paid.
func (h *Payment) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePayment
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	p := &model.Payment{
		ID:          platform.NewID(),
		OrderID:     req.OrderID,
		Provider:    req.Provider,
		Method:      req.Method,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      req.Status,
		ProviderRef: req.ProviderRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.svc.Create(r.Context(), p); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, p)
}

// Refund godoc
//
//	@Summary		Refund a payment
//	@Description	Only succeeded payments can be refunded. The order is marked refunded when its status allows it.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Payment ID"
//	@Success		200	{object}	model.Payment
//	@Failure		404	{object}	response.ErrorResponse
//	@Failure		409	{object}	response.ErrorResponse
//	@Router			/admin/payments/{id}/refund [post]
func (h *Payment) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.Refund(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, p)
}
