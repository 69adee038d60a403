package core

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/edvin/shopadmin/internal/storage"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Row ----------

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- Mock Rows ----------

// mockRows implements pgx.Rows for testing.
// It iterates through a list of scan functions, one per row.
type mockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
	err       error
}

func newMockRows(scanFuncs ...func(dest ...any) error) *mockRows {
	return &mockRows{scanFuncs: scanFuncs}
}

// newEmptyMockRows returns a mockRows that yields zero rows.
func newEmptyMockRows() *mockRows {
	return &mockRows{}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *mockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *mockRows) Err() error                                   { return m.err }
func (m *mockRows) Close()                                       {}
func (m *mockRows) CommandTag() pgconn.CommandTag                 { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

// ---------- Helpers ----------

// countRow returns a mockRow that scans n into a single count column.
func countRow(n int) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int)) = n
		return nil
	}}
}

// errRow returns a mockRow whose Scan fails with err.
func errRow(err error) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error { return err }}
}

// sqlContaining matches a SQL argument containing substr.
func sqlContaining(substr string) any {
	return mock.MatchedBy(func(sql string) bool { return strings.Contains(sql, substr) })
}

// fakeStorage records stored and deleted keys in memory.
type fakeStorage struct {
	mu      sync.Mutex
	puts    []storage.PutInput
	deleted []string
	putErr  error
}

func (f *fakeStorage) Put(ctx context.Context, r io.Reader, in storage.PutInput) (storage.PutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return storage.PutResult{}, f.putErr
	}
	f.puts = append(f.puts, in)
	key := fmt.Sprintf("key-%d%s", len(f.puts), path.Ext(in.Filename))
	return storage.PutResult{Key: key, URL: "/uploads/" + key}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) String() string { return "fake" }
