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

type Banner struct {
	svc *core.BannerService
}

func NewBanner(svc *core.BannerService) *Banner {
	return &Banner{svc: svc}
}

// List godoc
//
//	@Summary		List banners
//	@Tags			Banners
//	@Security		BearerAuth
//	@Param			search		query		string	false	"Search in title or campaign"
//	@Param			status		query		string	false	"active or inactive"
//	@Param			campaign	query		string	false	"Campaign"
//	@Success		200			{object}	response.PageResponse{items=[]model.Banner}
//	@Router			/banners [get]
func (h *Banner) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "position", "campaign")
	if !ok {
		return
	}
	banners, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, banners, total, params.Page, params.PageSize)
}

// Grouped godoc
//
//	@Summary		Banners grouped by campaign
//	@Tags			Banners
//	@Security		BearerAuth
//	@Success		200	{array}	model.BannerGroup
//	@Router			/banners/grouped [get]
func (h *Banner) Grouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Grouped(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, groups)
}

// Create godoc
//
//	@Summary		Create a banner
//	@Tags			Banners
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Param			title		formData	string	true	"Title"
//	@Param			campaign	formData	string	true	"Campaign"
//	@Param			link_url	formData	string	false	"Link URL"
//	@Param			position	formData	int		false	"Position within the campaign"
//	@Param			active		formData	bool	false	"Active (default true)"
//	@Param			starts_at	formData	string	false	"RFC 3339 start"
//	@Param			ends_at		formData	string	false	"RFC 3339 end"
//	@Param			image		formData	file	true	"png, jpg, webp or gif image"
//	@Success		201			{object}	model.Banner
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/banners [post]
func (h *Banner) Create(w http.ResponseWriter, r *http.Request) {
	if err := request.ParseMultipart(w, r); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := request.ParseBannerForm(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, upload, ok := formImage(w, r)
	if !ok {
		return
	}
	defer upload.Close()

	now := time.Now()
	b := &model.Banner{
		ID:        platform.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyBanner(b, req)

	if err := h.svc.Create(r.Context(), b, img); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, b)
}

// Update replaces the fields of a banner; the image only when one is uploaded.
func (h *Banner) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := request.ParseMultipart(w, r); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := request.ParseBannerForm(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, upload, ok := formImage(w, r)
	if !ok {
		return
	}
	defer upload.Close()

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	applyBanner(b, req)

	if err := h.svc.Update(r.Context(), b, img); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, b)
}

func (h *Banner) Delete(w http.ResponseWriter, r *http.Request) {
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

func applyBanner(b *model.Banner, req request.CreateBanner) {
	b.Title = req.Title
	b.Campaign = req.Campaign
	b.LinkURL = req.LinkURL
	b.Position = req.Position
	b.Active = req.Active
	b.StartsAt = req.StartsAt
	b.EndsAt = req.EndsAt
}
