package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/model"
)

func productScan(id, name string, price int64, stock int) func(dest ...any) error {
	return func(dest ...any) error {
		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = name
		*(dest[2].(*string)) = "slug-" + id
		*(dest[3].(*string)) = ""
		*(dest[4].(**string)) = nil
		*(dest[5].(*int64)) = price
		*(dest[6].(**int64)) = nil
		*(dest[7].(*string)) = "SKU-" + id
		*(dest[8].(*int)) = stock
		*(dest[9].(*string)) = model.ProductActive
		*(dest[10].(*string)) = ""
		*(dest[11].(*time.Time)) = now
		*(dest[12].(*time.Time)) = now
		return nil
	}
}

func variantScan(id, productID, productName, size string) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = productID
		*(dest[2].(*string)) = "SKU-" + id
		*(dest[3].(**string)) = nil
		*(dest[4].(**string)) = nil
		*(dest[5].(**string)) = nil
		*(dest[6].(*string)) = size
		*(dest[7].(**int64)) = nil
		*(dest[8].(*int)) = 1
		*(dest[9].(*string)) = productName
		*(dest[10].(*time.Time)) = time.Now()
		*(dest[11].(*time.Time)) = time.Now()
		return nil
	}
}

func TestProductService_Create_WithVariants(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	p := &model.Product{
		ID:       "p1",
		Name:     "Summer Dress",
		SKU:      "DRESS-1",
		Status:   model.ProductDraft,
		Variants: []model.Variant{{ID: "v1", SKU: "DRESS-1-S"}, {ID: "v2", SKU: "DRESS-1-M"}},
	}

	db.On("Exec", ctx, sqlContaining("INSERT INTO products"), mock.Anything).Return(pgconn.CommandTag{}, nil).Once()
	db.On("Exec", ctx, sqlContaining("INSERT INTO variants"), mock.Anything).Return(pgconn.CommandTag{}, nil).Twice()

	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, "p1", p.Variants[0].ProductID)
	assert.Equal(t, "p1", p.Variants[1].ProductID)
	db.AssertExpectations(t)
}

func TestProductService_Create_DuplicateSKU(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"})

	err := svc.Create(ctx, &model.Product{ID: "p1", SKU: "DUP"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "create product")
}

func TestProductService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"p1"}).
		Return(&mockRow{scanFunc: productScan("p1", "Summer Dress", 4999, 3)})
	db.On("Query", ctx, sqlContaining("FROM variants v"), []any{"p1"}).
		Return(newMockRows(variantScan("v1", "p1", "Summer Dress", "S")), nil)

	p, err := svc.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Summer Dress", p.Name)
	assert.Equal(t, int64(4999), p.PriceCents)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "S", p.Variants[0].Size)
	db.AssertExpectations(t)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(errRow(pgx.ErrNoRows))

	_, err := svc.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_List_FiltersAndTotal(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	params := request.ListParams{
		Page: 2, PageSize: 2, Search: "dress", Status: "active", Sort: "price", Order: "asc",
		Filters: map[string]string{"category_id": "c1"},
	}

	db.On("QueryRow", ctx, sqlContaining("SELECT count(*) FROM products WHERE"), []any{"%dress%", "active", "c1"}).
		Return(countRow(5))
	db.On("Query", ctx, sqlContaining("ORDER BY price_cents ASC"), []any{"%dress%", "active", "c1", 2, 2}).
		Return(newMockRows(
			productScan("p3", "Dress C", 3000, 1),
			productScan("p4", "Dress D", 4000, 0),
		), nil)

	products, total, err := svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, products, 2)
	assert.Equal(t, "p3", products[0].ID)
	db.AssertExpectations(t)
}

func TestProductService_List_CountError(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(errRow(errors.New("db down")))

	_, _, err := svc.List(ctx, request.ListParams{Page: 1, PageSize: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count products")
}

func TestProductService_Patch(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	stock := 0
	db.On("QueryRow", ctx, sqlContaining("COALESCE"), mock.Anything).
		Return(&mockRow{scanFunc: productScan("p1", "Dress", 1000, 0)})

	p, err := svc.Patch(ctx, "p1", nil, &stock, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	db.AssertExpectations(t)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), []any{"p1"}).Return(pgconn.NewCommandTag("DELETE 0"), nil)

	err := svc.Delete(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_GroupedVariants(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newMockRows(
		variantScan("v1", "p1", "Dress", "S"),
		variantScan("v2", "p1", "Dress", "M"),
		variantScan("v3", "p2", "Shirt", "L"),
		variantScan("v4", "p1", "Dress", "L"),
	), nil)

	groups, err := svc.GroupedVariants(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "p1", groups[0].ProductID)
	assert.Equal(t, "Dress", groups[0].ProductName)
	assert.Len(t, groups[0].Variants, 3)
	assert.Equal(t, "p2", groups[1].ProductID)
	assert.Len(t, groups[1].Variants, 1)
}

func TestProductService_GroupedVariants_Empty(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	groups, err := svc.GroupedVariants(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.NotNil(t, groups)
}

func TestProductService_ExportRows(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Query", ctx, sqlContaining("LEFT JOIN categories"), mock.Anything).Return(newMockRows(
		func(dest ...any) error {
			*(dest[0].(*string)) = "p1"
			*(dest[1].(*string)) = "Dress"
			*(dest[2].(*string)) = "DRESS-1"
			*(dest[3].(*string)) = "Women"
			*(dest[4].(*int64)) = 4999
			*(dest[5].(*int)) = 3
			*(dest[6].(*string)) = "active"
			*(dest[7].(*int)) = 2
			*(dest[8].(*string)) = "2026-01-02"
			return nil
		},
	), nil)

	rows, err := svc.ExportRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Women", rows[0].CategoryName)
	assert.Equal(t, 2, rows[0].VariantCount)
}

func TestProductService_UpdateVariant_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewProductService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := svc.UpdateVariant(ctx, &model.Variant{ID: "v9", SKU: "X1"})
	assert.ErrorIs(t, err, ErrNotFound)
}
