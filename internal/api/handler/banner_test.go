package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
)

func TestBannerCreate_RequiresImage(t *testing.T) {
	db := new(handlerMockDB)
	h := NewBanner(core.NewBannerService(db, newMemStore()))

	rec := httptest.NewRecorder()
	r := newMultipartRequest(http.MethodPost, "/banners", map[string]string{
		"title": "Spring sale", "campaign": "spring",
	}, "", nil)
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "image is required")
	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestBannerCreate_Success(t *testing.T) {
	db := new(handlerMockDB)
	store := newMemStore()
	h := NewBanner(core.NewBannerService(db, store))
	db.On("Exec", mock.Anything, sqlContaining("INSERT INTO banners"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	rec := httptest.NewRecorder()
	r := newMultipartRequest(http.MethodPost, "/banners", map[string]string{
		"title":     "Spring sale",
		"campaign":  "spring",
		"position":  "2",
		"starts_at": "2026-03-01T00:00:00Z",
	}, "hero.jpg", []byte("jpeg"))
	h.Create(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	var b model.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "spring", b.Campaign)
	assert.Equal(t, 2, b.Position)
	assert.True(t, b.Active)
	require.NotNil(t, b.StartsAt)
	assert.Equal(t, "/uploads/img/hero.jpg", b.ImageURL)
}

func TestBannerCreate_ReversedWindow(t *testing.T) {
	h := NewBanner(nil)
	rec := httptest.NewRecorder()

	r := newMultipartRequest(http.MethodPost, "/banners", map[string]string{
		"title":     "Spring sale",
		"campaign":  "spring",
		"starts_at": "2026-03-10T00:00:00Z",
		"ends_at":   "2026-03-01T00:00:00Z",
	}, "hero.jpg", []byte("jpeg"))
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBannerDelete_RemovesImage(t *testing.T) {
	db := new(handlerMockDB)
	store := newMemStore()
	store.objects["img/hero.jpg"] = []byte("jpeg")
	h := NewBanner(core.NewBannerService(db, store))
	db.On("QueryRow", mock.Anything, sqlContaining("DELETE FROM banners"), []any{validID}).
		Return(&handlerMockRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*string)) = "img/hero.jpg"
			return nil
		}})

	rec := httptest.NewRecorder()
	h.Delete(rec, withChiURLParam(httptest.NewRequest(http.MethodDelete, "/banners/"+validID, nil), "id", validID))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.objects)
}

func TestBannerGrouped(t *testing.T) {
	db := new(handlerMockDB)
	h := NewBanner(core.NewBannerService(db, nil))
	banner := func(id, campaign string, pos int) func(dest ...any) error {
		return func(dest ...any) error {
			*(dest[0].(*string)) = id
			*(dest[1].(*string)) = "Banner " + id
			*(dest[2].(*string)) = campaign
			*(dest[6].(*int)) = pos
			return nil
		}
	}
	db.On("Query", mock.Anything, mock.Anything, mock.Anything).
		Return(newHandlerMockRows(banner("b1", "spring", 1), banner("b2", "spring", 2), banner("b3", "summer", 1)), nil)

	rec := httptest.NewRecorder()
	h.Grouped(rec, httptest.NewRequest(http.MethodGet, "/banners/grouped", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var groups []model.BannerGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "spring", groups[0].Campaign)
	assert.Len(t, groups[0].Banners, 2)
	assert.Equal(t, "summer", groups[1].Campaign)
}
