package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/platform"
)

const streamWriteTimeout = 10 * time.Second

// OrderFeed hands out subscriptions to live order events.
type OrderFeed interface {
	Subscribe() (<-chan model.OrderEvent, func())
}

type Order struct {
	svc  *core.OrderService
	feed OrderFeed
}

func NewOrder(svc *core.OrderService, feed OrderFeed) *Order {
	return &Order{svc: svc, feed: feed}
}

// List godoc
//
//	@Summary		List orders
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			search		query		string	false	"Search in order number"
//	@Param			status		query		string	false	"Order status"
//	@Param			customer_id	query		string	false	"Customer ID"
//	@Param			from		query		string	false	"Created on or after (YYYY-MM-DD or RFC 3339)"
//	@Param			to			query		string	false	"Created on or before (YYYY-MM-DD or RFC 3339)"
//	@Success		200			{object}	response.PageResponse{items=[]model.Order}
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/orders [get]
func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at", "customer_id")
	if !ok {
		return
	}
	orders, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, orders, total, params.Page, params.PageSize)
}

func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, o)
}

// Create godoc
//
//	@Summary		Create an order
//	@Description	Prices the items from the catalog, applies the coupon and stores the order as pending. Totals in the body are ignored.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			body	body		request.CreateOrder	true	"Order"
//	@Success		201		{object}	model.Order
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/orders [post]
func (h *Order) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrder
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	o := &model.Order{
		ID:              platform.NewID(),
		CustomerID:      req.CustomerID,
		Status:          model.OrderPending,
		Currency:        req.Currency,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.CouponCode != "" {
		code := req.CouponCode
		o.CouponCode = &code
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, model.OrderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	if err := h.svc.Create(r.Context(), o); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, o)
}

// UpdateStatus godoc
//
//	@Summary		Change the status of an order
//	@Description	pending to paid to shipped to delivered; pending or paid to cancelled; paid, shipped or delivered to refunded. Other moves return 409.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Order ID"
//	@Param			body	body		request.UpdateOrderStatus	true	"New status"
//	@Success		200		{object}	model.Order
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/orders/{id}/status [patch]
func (h *Order) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateOrderStatus
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, o)
}

// Stream godoc
//
//	@Summary		Live order feed
//	@Description	Upgrades to a WebSocket and pushes a JSON event for every created order and status change. Browsers pass the bearer token in the token query parameter.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Param			token	query	string	false	"Bearer token"
//	@Success		101
//	@Router			/orders/stream [get]
func (h *Order) Stream(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // The dashboard is served from another origin.
	})
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.CloseNow()

	events, cancel := h.feed.Subscribe()
	defer cancel()

	// The client never sends; CloseRead handles its close frame and cancels ctx.
	ctx := ws.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case e, open := <-events:
			if !open {
				ws.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := writeEvent(ctx, ws, e); err != nil {
				logger.Debug().Err(err).Str("order_id", e.OrderID).Msg("order stream write failed")
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, ws *websocket.Conn, e model.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, ws, e)
}
