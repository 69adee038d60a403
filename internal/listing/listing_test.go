package listing

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestNewPageInfo_Boundaries(t *testing.T) {
	tests := []struct {
		name               string
		total, page, size  int
		wantPages          int
		wantNext, wantPrev bool
	}{
		{"empty", 0, 1, 10, 1, false, false},
		{"single page", 5, 1, 10, 1, false, false},
		{"first of three", 25, 1, 10, 3, true, false},
		{"middle", 25, 2, 10, 3, true, true},
		{"last", 25, 3, 10, 3, false, true},
		{"exact multiple", 20, 2, 10, 2, false, true},
		{"past the end", 25, 9, 10, 3, false, true},
		{"page zero clamps to one", 25, 0, 10, 3, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantPages, info.TotalPages)
			assert.Equal(t, tt.wantNext, info.HasNext)
			assert.Equal(t, tt.wantPrev, info.HasPrev)
		})
	}
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, DefaultPageSize, ClampPageSize(-4))
	assert.Equal(t, 7, ClampPageSize(7))
	assert.Equal(t, MaxPageSize, ClampPageSize(1000))
}

func TestPaginate(t *testing.T) {
	items := seq(25)

	p := Paginate(items, 1, 10)
	assert.Equal(t, seq(10), p.Items)

	p = Paginate(items, 3, 10)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, p.Items)
	assert.Equal(t, 25, p.Total)

	p = Paginate(items, 4, 10)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := seq(5)
	p := Paginate(items, 1, 5)
	p.Items[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestApply_FilterSortPaginate(t *testing.T) {
	names := []string{"pear", "Apple", "banana", "apricot", "cherry", "avocado"}

	p := Apply(names, Query[string]{
		Filter:   func(s string) bool { return strings.HasPrefix(strings.ToLower(s), "a") },
		Less:     func(a, b string) bool { return strings.ToLower(a) < strings.ToLower(b) },
		Page:     1,
		PageSize: 2,
	})
	assert.Equal(t, []string{"Apple", "apricot"}, p.Items)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.TotalPages)
	assert.True(t, p.HasNext)

	// input untouched
	assert.Equal(t, "pear", names[0])
}

func TestApply_ReverseSort(t *testing.T) {
	p := Apply(seq(5), Query[int]{
		Less:     Reverse(func(a, b int) bool { return a < b }),
		PageSize: 10,
	})
	assert.Equal(t, []int{5, 4, 3, 2, 1}, p.Items)
}

func TestGroupBy_FirstAppearanceOrder(t *testing.T) {
	type variant struct {
		product string
		sku     string
	}
	variants := []variant{
		{"p2", "a"}, {"p1", "b"}, {"p2", "c"}, {"p3", "d"}, {"p1", "e"},
	}

	groups := GroupBy(variants, func(v variant) string { return v.product })
	require.Len(t, groups, 3)
	assert.Equal(t, "p2", groups[0].Key)
	assert.Equal(t, []variant{{"p2", "a"}, {"p2", "c"}}, groups[0].Items)
	assert.Equal(t, "p1", groups[1].Key)
	assert.Equal(t, "p3", groups[2].Key)
}

func TestGroupBy_Empty(t *testing.T) {
	assert.Empty(t, GroupBy([]int{}, func(i int) int { return i }))
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	for _, page := range []int{math.MaxInt / 10, math.MaxInt} {
		p := Paginate([]int{1, 2, 3}, page, 20)
		assert.Empty(t, p.Items)
		assert.Equal(t, MaxPage, p.Page)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	}
}

func TestNewPageInfo_OffsetNeverNegative(t *testing.T) {
	info := NewPageInfo(3, math.MaxInt, MaxPageSize)
	assert.Positive(t, info.Offset())
	assert.LessOrEqual(t, info.Offset(), math.MaxInt32)
}

func TestApply_HugePageIsEmpty(t *testing.T) {
	p := Apply([]string{"a", "b"}, Query[string]{Page: math.MaxInt, PageSize: 5})
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.Total)
}
