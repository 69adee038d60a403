package request

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/edvin/shopadmin/internal/storage"
)

// Upload is an image file taken from a multipart form.
type Upload struct {
	File        multipart.File
	Filename    string
	ContentType string
	Size        int64
}

// Close releases the underlying form file.
func (u *Upload) Close() error {
	if u == nil || u.File == nil {
		return nil
	}
	return u.File.Close()
}

// ParseMultipart limits the body to the upload maximum and parses the form.
func ParseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("upload exceeds %d bytes", storage.MaxUploadBytes)
		}
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// FormImage returns the image in the given form field, or nil when the
// field is absent.
func FormImage(r *http.Request, field string) (*Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if header.Size > storage.MaxUploadBytes {
		file.Close()
		return nil, fmt.Errorf("%s exceeds %d bytes", field, storage.MaxUploadBytes)
	}
	if _, err := storage.ImageExt(header.Filename); err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	ct := header.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = storage.ContentType(header.Filename)
	}
	return &Upload{File: file, Filename: header.Filename, ContentType: ct, Size: header.Size}, nil
}

// FormString returns the trimmed value of a form field.
func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormInt parses an integer form field; an empty field yields 0.
func FormInt(r *http.Request, key string) (int, error) {
	v := FormString(r, key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// FormBool parses a boolean form field, returning def when it is empty.
func FormBool(r *http.Request, key string, def bool) (bool, error) {
	v := FormString(r, key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// FormTime parses an RFC 3339 form field; an empty field yields nil.
func FormTime(r *http.Request, key string) (*time.Time, error) {
	v := FormString(r, key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &t, nil
}

// ParseAgeGroupForm reads an age group from a parsed multipart form.
func ParseAgeGroupForm(r *http.Request) (CreateAgeGroup, error) {
	var (
		req CreateAgeGroup
		err error
	)
	req.Label = FormString(r, "label")
	if req.MinAge, err = FormInt(r, "min_age"); err != nil {
		return req, err
	}
	if req.MaxAge, err = FormInt(r, "max_age"); err != nil {
		return req, err
	}
	if req.SortOrder, err = FormInt(r, "sort_order"); err != nil {
		return req, err
	}
	return req, Validate(&req)
}

// ParseBannerForm reads a banner from a parsed multipart form.
func ParseBannerForm(r *http.Request) (CreateBanner, error) {
	var (
		req CreateBanner
		err error
	)
	req.Title = FormString(r, "title")
	req.Campaign = FormString(r, "campaign")
	req.LinkURL = FormString(r, "link_url")
	if req.Position, err = FormInt(r, "position"); err != nil {
		return req, err
	}
	if req.Active, err = FormBool(r, "active", true); err != nil {
		return req, err
	}
	if req.StartsAt, err = FormTime(r, "starts_at"); err != nil {
		return req, err
	}
	if req.EndsAt, err = FormTime(r, "ends_at"); err != nil {
		return req, err
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return req, fmt.Errorf("validation error: ends_at is before starts_at")
	}
	return req, Validate(&req)
}
