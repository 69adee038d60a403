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

type Coupon struct {
	svc *core.CouponService
}

func NewCoupon(svc *core.CouponService) *Coupon {
	return &Coupon{svc: svc}
}

// List godoc
//
//	@Summary		List coupons
//	@Tags			Coupons
//	@Security		BearerAuth
//	@Param			search	query		string	false	"Search in code"
//	@Param			status	query		string	false	"active, inactive or expired"
//	@Param			type	query		string	false	"percentage or fixed"
//	@Success		200		{object}	response.PageResponse{items=[]model.Coupon}
//	@Router			/user/coupons [get]
func (h *Coupon) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at", "type")
	if !ok {
		return
	}
	coupons, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, coupons, total, params.Page, params.PageSize)
}

// Create godoc
//
//	@Summary		Create a coupon
//	@Description	Codes are stored upper-cased. Fixed values are in cents; percentage values may not exceed 100.
//	@Tags			Coupons
//	@Security		BearerAuth
//	@Param			body	body		request.CreateCoupon	true	"Coupon"
//	@Success		201		{object}	model.Coupon
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/user/coupons [post]
func (h *Coupon) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCoupon
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	c := &model.Coupon{
		ID:        platform.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCoupon(c, req, now)

	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

func (h *Coupon) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

func (h *Coupon) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateCoupon
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	applyCoupon(c, req, c.StartsAt)

	if err := h.svc.Update(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

func (h *Coupon) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyCoupon copies the request onto c. A missing starts_at falls back to
// defaultStart and a missing active flag to true.
func applyCoupon(c *model.Coupon, req request.CreateCoupon, defaultStart time.Time) {
	c.Code = req.Code
	c.Type = req.Type
	c.Value = req.Value
	c.MinOrderAmountCents = req.MinOrderAmountCents
	c.MaxUses = req.MaxUses
	c.StartsAt = defaultStart
	if req.StartsAt != nil {
		c.StartsAt = *req.StartsAt
	}
	c.EndsAt = req.EndsAt
	c.Active = true
	if req.Active != nil {
		c.Active = *req.Active
	}
}
