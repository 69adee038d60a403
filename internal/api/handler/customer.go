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

type Customer struct {
	svc    *core.CustomerService
	orders *core.OrderService
}

func NewCustomer(svc *core.CustomerService, orders *core.OrderService) *Customer {
	return &Customer{svc: svc, orders: orders}
}

// List godoc
//
//	@Summary		List customers
//	@Description	Each customer carries its order count and the total of its paid orders.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Param			search	query		string	false	"Search in name or email"
//	@Param			status	query		string	false	"active or blocked"
//	@Success		200		{object}	response.PageResponse{items=[]model.Customer}
//	@Router			/customers [get]
func (h *Customer) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at")
	if !ok {
		return
	}
	customers, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, customers, total, params.Page, params.PageSize)
}

func (h *Customer) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCustomer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	c := &model.Customer{
		ID:        platform.NewID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

func (h *Customer) Get(w http.ResponseWriter, r *http.Request) {
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

// Update changes the name, phone or status of a customer. Blocked customers
// cannot place new orders.
func (h *Customer) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateCustomer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Update(r.Context(), id, req.Name, req.Phone, req.Status)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

// Orders lists the orders of one customer with the usual order filters.
func (h *Customer) Orders(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	params, ok := listParams(w, r, "created_at")
	if !ok {
		return
	}
	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	params.Filters["customer_id"] = id

	orders, total, err := h.orders.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, orders, total, params.Page, params.PageSize)
}
