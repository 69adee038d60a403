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

type AgeGroup struct {
	svc *core.AgeGroupService
}

func NewAgeGroup(svc *core.AgeGroupService) *AgeGroup {
	return &AgeGroup{svc: svc}
}

func (h *AgeGroup) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "sort_order")
	if !ok {
		return
	}
	groups, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, groups, total, params.Page, params.PageSize)
}

// Create godoc
//
//	@Summary		Create an age group
//	@Tags			Age Groups
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Param			label		formData	string	true	"Label"
//	@Param			min_age		formData	int		false	"Minimum age"
//	@Param			max_age		formData	int		false	"Maximum age"
//	@Param			sort_order	formData	int		false	"Sort order"
//	@Param			image		formData	file	false	"png, jpg, webp or gif image"
//	@Success		201			{object}	model.AgeGroup
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/ages [post]
func (h *AgeGroup) Create(w http.ResponseWriter, r *http.Request) {
	if err := request.ParseMultipart(w, r); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := request.ParseAgeGroupForm(r)
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
	ag := &model.AgeGroup{
		ID:        platform.NewID(),
		Label:     req.Label,
		MinAge:    req.MinAge,
		MaxAge:    req.MaxAge,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.svc.Create(r.Context(), ag, img); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, ag)
}

func (h *AgeGroup) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	ag, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, ag)
}

// Update godoc
//
//	@Summary		Update an age group
//	@Description	Replaces the fields of an age group. The stored image is replaced only when a new image is uploaded.
//	@Tags			Age Groups
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Param			id			path		string	true	"Age group ID"
//	@Param			label		formData	string	true	"Label"
//	@Param			min_age		formData	int		false	"Minimum age"
//	@Param			max_age		formData	int		false	"Maximum age"
//	@Param			sort_order	formData	int		false	"Sort order"
//	@Param			image		formData	file	false	"png, jpg, webp or gif image"
//	@Success		200			{object}	model.AgeGroup
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		404			{object}	response.ErrorResponse
//	@Router			/ages/{id} [put]
func (h *AgeGroup) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := request.ParseMultipart(w, r); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := request.ParseAgeGroupForm(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, upload, ok := formImage(w, r)
	if !ok {
		return
	}
	defer upload.Close()

	ag, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	ag.Label = req.Label
	ag.MinAge = req.MinAge
	ag.MaxAge = req.MaxAge
	ag.SortOrder = req.SortOrder

	if err := h.svc.Update(r.Context(), ag, img); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, ag)
}

func (h *AgeGroup) Delete(w http.ResponseWriter, r *http.Request) {
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

// ---------- Colors ----------

type Color struct {
	svc *core.ColorService
}

func NewColor(svc *core.ColorService) *Color {
	return &Color{svc: svc}
}

func (h *Color) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "name")
	if !ok {
		return
	}
	colors, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, colors, total, params.Page, params.PageSize)
}

func (h *Color) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateColor
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c := &model.Color{
		ID:        platform.NewID(),
		Name:      req.Name,
		Hex:       req.Hex,
		CreatedAt: time.Now(),
	}
	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

func (h *Color) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.CreateColor
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c := &model.Color{ID: id, Name: req.Name, Hex: req.Hex}
	if err := h.svc.Update(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

func (h *Color) Delete(w http.ResponseWriter, r *http.Request) {
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

// ---------- Materials ----------

type Material struct {
	svc *core.MaterialService
}

func NewMaterial(svc *core.MaterialService) *Material {
	return &Material{svc: svc}
}

func (h *Material) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "name")
	if !ok {
		return
	}
	materials, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, materials, total, params.Page, params.PageSize)
}

func (h *Material) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaterial
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	m := &model.Material{
		ID:          platform.NewID(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := h.svc.Create(r.Context(), m); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, m)
}

func (h *Material) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.CreateMaterial
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	m := &model.Material{ID: id, Name: req.Name, Description: req.Description}
	if err := h.svc.Update(r.Context(), m); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, m)
}

func (h *Material) Delete(w http.ResponseWriter, r *http.Request) {
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
