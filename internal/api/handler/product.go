package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/export"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/platform"
)

type Product struct {
	svc *core.ProductService
}

func NewProduct(svc *core.ProductService) *Product {
	return &Product{svc: svc}
}

// List godoc
//
//	@Summary		List products
//	@Description	Paginated product list. Searches name and SKU; filters on status and category_id.
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			page_size	query		int		false	"Page size (default 20, max 100)"
//	@Param			search		query		string	false	"Search in name or SKU"
//	@Param			status		query		string	false	"draft, active or archived"
//	@Param			category_id	query		string	false	"Category ID"
//	@Param			sort		query		string	false	"name, price, stock or created_at"
//	@Param			order		query		string	false	"asc or desc"
//	@Success		200			{object}	response.PageResponse{items=[]model.Product}
//	@Failure		400			{object}	response.ErrorResponse
//	@Router			/products [get]
func (h *Product) List(w http.ResponseWriter, r *http.Request) {
	params, ok := listParams(w, r, "created_at", "category_id")
	if !ok {
		return
	}
	products, total, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, products, total, params.Page, params.PageSize)
}

// Create godoc
//
//	@Summary		Create a product
//	@Description	Creates a product and any variants in the body. The slug is derived from the name when omitted.
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			body	body		request.CreateProduct	true	"Product"
//	@Success		201		{object}	model.Product
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/products [post]
func (h *Product) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProduct
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	p := &model.Product{
		ID:                  platform.NewID(),
		Name:                req.Name,
		Slug:                slugOr(req.Slug, req.Name),
		Description:         req.Description,
		CategoryID:          req.CategoryID,
		PriceCents:          req.PriceCents,
		CompareAtPriceCents: req.CompareAtPriceCents,
		SKU:                 req.SKU,
		Stock:               req.Stock,
		Status:              req.Status,
		ImageURL:            req.ImageURL,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if p.Status == "" {
		p.Status = model.ProductDraft
	}
	for _, vr := range req.Variants {
		p.Variants = append(p.Variants, newVariant(p.ID, vr, now))
	}

	if err := h.svc.Create(r.Context(), p); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, p)
}

// Get godoc
//
//	@Summary		Get a product
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	model.Product
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/products/{id} [get]
func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
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

// Update godoc
//
//	@Summary		Replace a product
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Product ID"
//	@Param			body	body		request.UpdateProduct	true	"Product"
//	@Success		200		{object}	model.Product
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/products/{id} [put]
func (h *Product) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateProduct
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &model.Product{
		ID:                  id,
		Name:                req.Name,
		Slug:                slugOr(req.Slug, req.Name),
		Description:         req.Description,
		CategoryID:          req.CategoryID,
		PriceCents:          req.PriceCents,
		CompareAtPriceCents: req.CompareAtPriceCents,
		SKU:                 req.SKU,
		Stock:               req.Stock,
		Status:              req.Status,
		ImageURL:            req.ImageURL,
	}
	if err := h.svc.Update(r.Context(), p); err != nil {
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

// Patch godoc
//
//	@Summary		Change status, stock or price
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Product ID"
//	@Param			body	body		request.PatchProduct	true	"Fields to change"
//	@Success		200		{object}	model.Product
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/products/{id} [patch]
func (h *Product) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.PatchProduct
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status == nil && req.Stock == nil && req.PriceCents == nil {
		response.WriteError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	p, err := h.svc.Patch(r.Context(), id, req.Status, req.Stock, req.PriceCents)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, p)
}

// Delete godoc
//
//	@Summary		Delete a product
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Failure		409	{object}	response.ErrorResponse
//	@Router			/products/{id} [delete]
func (h *Product) Delete(w http.ResponseWriter, r *http.Request) {
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

// Export godoc
//
//	@Summary		Export products as xlsx
//	@Tags			Products
//	@Security		BearerAuth
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200	{file}		binary
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/products/export [get]
func (h *Product) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ExportRows(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	file, err := export.Products(rows, core.DefaultCurrency)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	if err := file.Write(w); err != nil {
		// Headers are already sent.
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("write product export")
	}
}

// ---------- Variants ----------

func newVariant(productID string, req request.CreateVariant, now time.Time) model.Variant {
	return model.Variant{
		ID:         platform.NewID(),
		ProductID:  productID,
		SKU:        req.SKU,
		ColorID:    req.ColorID,
		MaterialID: req.MaterialID,
		AgeGroupID: req.AgeGroupID,
		Size:       req.Size,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (h *Product) ListVariants(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}
	variants, err := h.svc.ListVariants(r.Context(), productID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, variants)
}

func (h *Product) CreateVariant(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlID(w, r, "productID")
	if !ok {
		return
	}
	var req request.CreateVariant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	v := newVariant(productID, req, time.Now())
	if err := h.svc.CreateVariant(r.Context(), &v); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, v)
}

func (h *Product) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req request.UpdateVariant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.svc.GetVariant(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	v.SKU = req.SKU
	v.ColorID = req.ColorID
	v.MaterialID = req.MaterialID
	v.AgeGroupID = req.AgeGroupID
	v.Size = req.Size
	v.PriceCents = req.PriceCents
	v.Stock = req.Stock
	if err := h.svc.UpdateVariant(r.Context(), v); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, v)
}

func (h *Product) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteVariant(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GroupedVariants godoc
//
//	@Summary		Variants grouped by product
//	@Description	Every variant, grouped under its parent product in order of first appearance.
//	@Tags			Variants
//	@Security		BearerAuth
//	@Success		200	{array}	model.VariantGroup
//	@Router			/variants/grouped [get]
func (h *Product) GroupedVariants(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.GroupedVariants(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, groups)
}
