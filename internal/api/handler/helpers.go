package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/platform"
)

// urlID reads a required chi URL parameter. It writes a 400 and returns
// false when the parameter is empty.
func urlID(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	id, err := request.RequireID(chi.URLParam(r, key))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}

// listParams parses paging, sorting, filters and the from/to date range.
func listParams(w http.ResponseWriter, r *http.Request, defaultSort string, filterKeys ...string) (request.ListParams, bool) {
	params := request.ParseListParams(r, defaultSort, filterKeys...)
	if err := params.ParseDateRange(r); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return params, false
	}
	return params, true
}

// slugOr returns slug, or one derived from name when slug is empty.
func slugOr(slug, name string) string {
	if slug != "" {
		return slug
	}
	return platform.Slug(name)
}

// formImage reads the optional "image" file of a parsed multipart form.
func formImage(w http.ResponseWriter, r *http.Request) (*core.Image, *request.Upload, bool) {
	up, err := request.FormImage(r, "image")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	if up == nil {
		return nil, nil, true
	}
	return &core.Image{
		Body:        up.File,
		Filename:    up.Filename,
		ContentType: up.ContentType,
		Size:        up.Size,
	}, up, true
}
