package shopctl

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/edvin/shopadmin/internal/listing"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	groupStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// Column renders one field of T.
type Column[T any] struct {
	Title string
	Value func(T) string
}

// View renders pages of one resource as a table.
type View[T any] struct {
	Resource string
	Columns  []Column[T]
}

// Render writes the page as a table followed by the pagination footer, or
// the empty-state line when the page has no items. A page past the end of a
// non-empty list says so instead of claiming there is nothing.
func (v View[T]) Render(w io.Writer, page listing.Page[T]) error {
	if len(page.Items) == 0 {
		if page.Total > 0 {
			_, err := fmt.Fprintf(w, "page %d of %d has no %s (%d total)\n", page.Page, page.TotalPages, v.Resource, page.Total)
			return err
		}
		_, err := fmt.Fprintf(w, "no %s found\n", v.Resource)
		return err
	}
	if _, err := fmt.Fprintln(w, v.table(page.Items)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, mutedStyle.Render(Footer(page.PageInfo)))
	return err
}

// RenderGroups writes one table per group under a heading.
func (v View[T]) RenderGroups(w io.Writer, groups []listing.Group[string, T]) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintf(w, "no %s found\n", v.Resource)
		return err
	}
	for _, g := range groups {
		heading := fmt.Sprintf("%s (%d)", g.Key, len(g.Items))
		if _, err := fmt.Fprintln(w, groupStyle.Render(heading)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, v.table(g.Items)); err != nil {
			return err
		}
	}
	return nil
}

// Fail converts a fetch error into the error state message.
func (v View[T]) Fail(err error) error {
	return FetchError(v.Resource, err)
}

func (v View[T]) table(items []T) string {
	headers := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		headers[i] = c.Title
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		row := make([]string, len(v.Columns))
		for j, c := range v.Columns {
			row[j] = c.Value(it)
		}
		rows[i] = row
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// Footer describes the page position and which directions are available.
func Footer(info listing.PageInfo) string {
	return fmt.Sprintf("page %d of %d (%d total)  prev: %s  next: %s",
		info.Page, info.TotalPages, info.Total, yesNo(info.HasPrev), yesNo(info.HasNext))
}

// FetchError formats a failed fetch as "failed to fetch <resource>: <message>".
func FetchError(resource string, err error) error {
	msg := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	return fmt.Errorf("failed to fetch %s: %s", resource, msg)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
