package shopctl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/model"
)

var colorView = View[model.Color]{
	Resource: "colors",
	Columns: []Column[model.Color]{
		{Title: "NAME", Value: func(c model.Color) string { return c.Name }},
		{Title: "HEX", Value: func(c model.Color) string { return c.Hex }},
	},
}

func TestView_RenderTableAndFooter(t *testing.T) {
	colors := []model.Color{
		{Name: "Red", Hex: "#ff0000"},
		{Name: "Green", Hex: "#00ff00"},
		{Name: "Blue", Hex: "#0000ff"},
	}
	var buf bytes.Buffer
	require.NoError(t, colorView.Render(&buf, listing.Paginate(colors, 1, 2)))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Red")
	assert.Contains(t, out, "#00ff00")
	assert.NotContains(t, out, "Blue")
	assert.Contains(t, out, "page 1 of 2 (3 total)  prev: no  next: yes")
}

func TestView_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, colorView.Render(&buf, listing.Paginate([]model.Color{}, 1, 20)))
	assert.Equal(t, "no colors found\n", buf.String())
}

func TestView_RenderPagePastTheEnd(t *testing.T) {
	colors := []model.Color{{Name: "Red", Hex: "#ff0000"}, {Name: "Green", Hex: "#00ff00"}}
	var buf bytes.Buffer
	require.NoError(t, colorView.Render(&buf, listing.Paginate(colors, 5, 20)))
	assert.Equal(t, "page 5 of 1 has no colors (2 total)\n", buf.String())
}

func TestView_RenderGroups(t *testing.T) {
	colors := []model.Color{{Name: "Red", Hex: "warm"}, {Name: "Blue", Hex: "cool"}, {Name: "Orange", Hex: "warm"}}
	groups := listing.GroupBy(colors, func(c model.Color) string { return c.Hex })

	var buf bytes.Buffer
	require.NoError(t, colorView.RenderGroups(&buf, groups))
	out := buf.String()
	assert.Contains(t, out, "warm (2)")
	assert.Contains(t, out, "cool (1)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("warm (2)")), bytes.Index(buf.Bytes(), []byte("cool (1)")))
}

func TestFooter_LastPage(t *testing.T) {
	info := listing.NewPageInfo(45, 3, 20)
	assert.Equal(t, "page 3 of 3 (45 total)  prev: yes  next: no", Footer(info))
}

func TestFetchError(t *testing.T) {
	err := colorView.Fail(&APIError{StatusCode: 500, Message: "database unavailable"})
	assert.EqualError(t, err, "failed to fetch colors: database unavailable")

	err = FetchError("payments", errors.New("connection refused"))
	assert.EqualError(t, err, "failed to fetch payments: connection refused")
}
