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

type Review struct {
	svc *core.ReviewService
}

func NewReview(svc *core.ReviewService) *Review {
	return &Review{svc: svc}
}

// List godoc
//
//	@Summary		List reviews
//	@Tags			Reviews
//	@Security		BearerAuth
//	@Param			status		query		string	false	"pending, approved or rejected"
//	@Param			flagged		query		bool	false	"Only flagged (true) or unflagged (false) reviews"
//	@Param			product_id	query		string	false	"Product ID"
//	@Param			min_rating	query		int		false	"Minimum rating"
//	@Success		200			{object}	response.PageResponse{items=[]model.Review}
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/reviews [get]
func (h *Review) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at", "flagged", "product_id", "min_rating")
	if !ok {
		return
	}
	reviews, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, reviews, total, params.Page, params.PageSize)
}

// Create godoc
//
//	@Summary		Ingest a review
//	@Description	The comment is checked against the moderation keywords and flagged when any of them occurs.
//	@Tags			Reviews
//	@Security		BearerAuth
//	@Param			body	body		request.CreateReview	true	"Review"
//	@Success		201		{object}	model.Review
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/reviews [post]
func (h *Review) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReview
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	rv := &model.Review{
		ID:         platform.NewID(),
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.svc.Create(r.Context(), rv); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, rv)
}

func (h *Review) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	rv, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rv)
}

func (h *Review) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateReviewStatus
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rv, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rv)
}

func (h *Review) Delete(w http.ResponseWriter, r *http.Request) {
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

// Scan godoc
//
//	@Summary		Re-run keyword flagging
//	@Description	Checks every stored review against the current keyword list and updates the ones whose flag changed.
//	@Tags			Reviews
//	@Security		BearerAuth
//	@Success		200	{object}	core.ScanResult
//	@Router			/reviews/scan [post]
func (h *Review) Scan(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Scan(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, res)
}
