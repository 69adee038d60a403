package request

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edvin/shopadmin/internal/listing"
)

func TestParsePagination_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	p := ParsePagination(r)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, listing.DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePagination_CustomValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&page_size=25", nil)
	p := ParsePagination(r)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.PageSize)
	assert.Equal(t, 50, p.Offset())
}

func TestParsePagination_ExceedsMax(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page_size=500", nil)
	p := ParsePagination(r)
	assert.Equal(t, listing.MaxPageSize, p.PageSize)
}

func TestParsePagination_InvalidValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=abc&page_size=-3", nil)
	p := ParsePagination(r)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, listing.DefaultPageSize, p.PageSize)
}

func TestParsePagination_ZeroPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=0", nil)
	p := ParsePagination(r)
	assert.Equal(t, 1, p.Page)
}

func TestParsePagination_HugePageCapped(t *testing.T) {
	for _, page := range []string{"922337203685477580", strconv.Itoa(math.MaxInt)} {
		r := httptest.NewRequest("GET", "/products?page="+page+"&page_size=20", nil)
		p := ParsePagination(r)
		assert.Equal(t, listing.MaxPage, p.Page)
		assert.Positive(t, p.Offset())
	}
}

func TestParseListParams_HugePageOffsetNonNegative(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?page=922337203685477580&page_size=100", nil)
	p := ParseListParams(r, "created_at")
	assert.Equal(t, (listing.MaxPage-1)*100, p.Offset())
	assert.Positive(t, p.Offset())
}
