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

type Category struct {
	svc *core.CategoryService
}

func NewCategory(svc *core.CategoryService) *Category {
	return &Category{svc: svc}
}

// List godoc
//
//	@Summary		List categories
//	@Tags			Categories
//	@Security		BearerAuth
//	@Param			search		query		string	false	"Search in name or slug"
//	@Param			status		query		string	false	"active or inactive"
//	@Param			parent_id	query		string	false	"Parent category ID"
//	@Success		200			{object}	response.PageResponse{items=[]model.Category}
//	@Router			/categories [get]
func (h *Category) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "sort_order", "parent_id")
	if !ok {
		return
	}
	categories, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, categories, total, params.Page, params.PageSize)
}

// Tree godoc
//
//	@Summary		Category tree
//	@Description	Every category nested under its parent. Categories whose parent is missing are returned as roots.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		200	{array}	model.Category
//	@Router			/categories/tree [get]
func (h *Category) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Tree(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, tree)
}

func (h *Category) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategory
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	c := &model.Category{
		ID:          platform.NewID(),
		Name:        req.Name,
		Slug:        slugOr(req.Slug, req.Name),
		ParentID:    req.ParentID,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

func (h *Category) Get(w http.ResponseWriter, r *http.Request) {
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

// Update godoc
//
//	@Summary		Update a category
//	@Description	Changes only the fields present in the body.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Category ID"
//	@Param			body	body		request.UpdateCategory	true	"Fields to change"
//	@Success		200		{object}	model.Category
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/categories/{id} [patch]
func (h *Category) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateCategory
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if req.ParentID != nil {
		c.ParentID = req.ParentID
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ImageURL != nil {
		c.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

// Delete godoc
//
//	@Summary		Delete a category
//	@Description	Refused with 409 while products or child categories reference it.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Category ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Failure		409	{object}	response.ErrorResponse
//	@Router			/categories/{id} [delete]
func (h *Category) Delete(w http.ResponseWriter, r *http.Request) {
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

// ---------- Collections ----------

type Collection struct {
	svc *core.CollectionService
}

func NewCollection(svc *core.CollectionService) *Collection {
	return &Collection{svc: svc}
}

func (h *Collection) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at")
	if !ok {
		return
	}
	collections, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, collections, total, params.Page, params.PageSize)
}

func (h *Collection) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCollection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	c := &model.Collection{
		ID:          platform.NewID(),
		Name:        req.Name,
		Slug:        slugOr(req.Slug, req.Name),
		Description: req.Description,
		Active:      true,
		ProductIDs:  req.ProductIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if c.ProductIDs == nil {
		c.ProductIDs = []string{}
	}

	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

func (h *Collection) Get(w http.ResponseWriter, r *http.Request) {
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

func (h *Collection) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateCollection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := &model.Collection{
		ID:          id,
		Name:        req.Name,
		Slug:        slugOr(req.Slug, req.Name),
		Description: req.Description,
		Active:      req.Active,
	}
	if err := h.svc.Update(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	updated, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, updated)
}

func (h *Collection) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddProduct puts a product into a collection. Adding it twice is a no-op.
func (h *Collection) AddProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}
	if err := h.svc.AddProduct(r.Context(), id, productID); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Collection) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}
	if err := h.svc.RemoveProduct(r.Context(), id, productID); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
