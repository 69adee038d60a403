package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/shopadmin/internal/api/request"
)

// conditions accumulates WHERE clauses and their positional arguments.
// Each clause is a format string with a single %d for the argument index.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

// raw adds a clause that takes no argument.
func (c *conditions) raw(clause string) {
	c.clauses = append(c.clauses, clause)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page returns the ORDER BY / LIMIT / OFFSET suffix for a list query
// together with the full argument list. sortCols maps public sort keys to
// SQL expressions; unknown keys fall back to fallback.
func (c *conditions) page(params request.ListParams, sortCols map[string]string, fallback string) (string, []any) {
	col, ok := sortCols[params.Sort]
	if !ok {
		col = fallback
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	args := append([]any{}, c.args...)
	args = append(args, params.PageSize, params.Offset())
	suffix := fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d", col, order, order, len(args)-1, len(args))
	return suffix, args
}

// countRows returns the number of rows in from matching c.
func countRows(ctx context.Context, db DB, from string, c *conditions) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM `+from+c.where(), c.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
