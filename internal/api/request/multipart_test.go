package request

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartRequest(t *testing.T, fields map[string]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/ages", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestParseAgeGroupForm_WithImage(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{"label": "Toddler", "min_age": "1", "max_age": "3"}, "image", "toddler.png", []byte("img"))
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))

	req, err := ParseAgeGroupForm(r)
	require.NoError(t, err)
	assert.Equal(t, "Toddler", req.Label)
	assert.Equal(t, 1, req.MinAge)
	assert.Equal(t, 3, req.MaxAge)

	up, err := FormImage(r, "image")
	require.NoError(t, err)
	require.NotNil(t, up)
	defer up.Close()
	assert.Equal(t, "toddler.png", up.Filename)
	assert.Equal(t, "image/png", up.ContentType)
	data, err := io.ReadAll(up.File)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
}

func TestParseAgeGroupForm_MaxBelowMin(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{"label": "Kids", "min_age": "8", "max_age": "4"}, "", "", nil)
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))
	_, err := ParseAgeGroupForm(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestParseAgeGroupForm_BadNumber(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{"label": "Kids", "min_age": "abc"}, "", "", nil)
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))
	_, err := ParseAgeGroupForm(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid min_age")
}

func TestFormImage_Missing(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{"label": "Kids"}, "", "", nil)
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))
	up, err := FormImage(r, "image")
	require.NoError(t, err)
	assert.Nil(t, up)
}

func TestFormImage_RejectsType(t *testing.T) {
	r := newMultipartRequest(t, nil, "image", "evil.exe", []byte("MZ"))
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))
	_, err := FormImage(r, "image")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")
}

func TestParseBannerForm(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{
		"title":     "Summer sale",
		"campaign":  "summer",
		"position":  "2",
		"starts_at": "2026-06-01T00:00:00Z",
		"ends_at":   "2026-06-30T00:00:00Z",
	}, "", "", nil)
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))

	req, err := ParseBannerForm(r)
	require.NoError(t, err)
	assert.Equal(t, "Summer sale", req.Title)
	assert.Equal(t, "summer", req.Campaign)
	assert.Equal(t, 2, req.Position)
	assert.True(t, req.Active)
	require.NotNil(t, req.StartsAt)
	require.NotNil(t, req.EndsAt)
}

func TestParseBannerForm_ReversedWindow(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{
		"title":     "Sale",
		"campaign":  "summer",
		"starts_at": "2026-06-30T00:00:00Z",
		"ends_at":   "2026-06-01T00:00:00Z",
	}, "", "", nil)
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), r))
	_, err := ParseBannerForm(r)
	assert.Error(t, err)
}

func TestParseMultipart_NotMultipart(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/ages", bytes.NewBufferString(`{}`))
	r.Header.Set("Content-Type", "application/json")
	assert.Error(t, ParseMultipart(httptest.NewRecorder(), r))
}
