package handler

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// handlerMockDB implements core.DB for handler tests.
type handlerMockDB struct {
	mock.Mock
}

func (m *handlerMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *handlerMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

type handlerMockRow struct {
	scanFunc func(dest ...any) error
}

func (m *handlerMockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// handlerMockRows yields one row per scan func.
type handlerMockRows struct {
	idx       int
	scanFuncs []func(dest ...any) error
}

func newHandlerMockRows(scanFuncs ...func(dest ...any) error) *handlerMockRows {
	return &handlerMockRows{scanFuncs: scanFuncs}
}

func (m *handlerMockRows) Next() bool { return m.idx < len(m.scanFuncs) }

func (m *handlerMockRows) Scan(dest ...any) error {
	fn := m.scanFuncs[m.idx]
	m.idx++
	return fn(dest...)
}

func (m *handlerMockRows) Err() error                                   { return nil }
func (m *handlerMockRows) Close()                                       {}
func (m *handlerMockRows) CommandTag() pgconn.CommandTag                 { return pgconn.CommandTag{} }
func (m *handlerMockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *handlerMockRows) RawValues() [][]byte                          { return nil }
func (m *handlerMockRows) Values() ([]any, error)                       { return nil, nil }
func (m *handlerMockRows) Conn() *pgx.Conn                              { return nil }

func errRow(err error) *handlerMockRow {
	return &handlerMockRow{scanFunc: func(dest ...any) error { return err }}
}

func countRow(n int) *handlerMockRow {
	return &handlerMockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int)) = n
		return nil
	}}
}

func sqlContaining(substr string) any {
	return mock.MatchedBy(func(sql string) bool { return strings.Contains(sql, substr) })
}
