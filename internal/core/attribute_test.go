package core

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/shopadmin/internal/model"
)

func TestAgeGroupService_Create_MinAboveMax(t *testing.T) {
	store := &fakeStorage{}
	svc := NewAgeGroupService(&mockDB{}, store)

	err := svc.Create(context.Background(), &model.AgeGroup{Label: "Toddler", MinAge: 5, MaxAge: 2}, testImage("t.png"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, store.puts)
}

func TestAgeGroupService_Create_WithoutImage(t *testing.T) {
	db := &mockDB{}
	store := &fakeStorage{}
	svc := NewAgeGroupService(db, store)
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("INSERT INTO age_groups"), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	ag := &model.AgeGroup{ID: "a1", Label: "Kids", MinAge: 4, MaxAge: 12}
	require.NoError(t, svc.Create(ctx, ag, nil))
	assert.Empty(t, ag.ImageURL)
	assert.Empty(t, store.puts)
}

func TestAgeGroupService_Update_ReplacesImage(t *testing.T) {
	db := &mockDB{}
	store := &fakeStorage{}
	svc := NewAgeGroupService(db, store)
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("UPDATE age_groups"), mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	ag := &model.AgeGroup{ID: "a1", Label: "Kids", MinAge: 4, MaxAge: 12, ImageKey: "old.jpg"}
	require.NoError(t, svc.Update(ctx, ag, testImage("kids.webp")))
	assert.Equal(t, "key-1.webp", ag.ImageKey)
	assert.Equal(t, "/uploads/key-1.webp", ag.ImageURL)
	assert.Equal(t, []string{"old.jpg"}, store.deleted)
}

func TestAgeGroupService_Update_NotFoundDropsNewImage(t *testing.T) {
	db := &mockDB{}
	store := &fakeStorage{}
	svc := NewAgeGroupService(db, store)
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("UPDATE age_groups"), mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	ag := &model.AgeGroup{ID: "gone", MinAge: 1, MaxAge: 2, ImageKey: "old.jpg"}
	err := svc.Update(ctx, ag, testImage("kids.png"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"key-1.png"}, store.deleted)
}

func TestAgeGroupService_Delete_DropsImage(t *testing.T) {
	db := &mockDB{}
	store := &fakeStorage{}
	svc := NewAgeGroupService(db, store)
	ctx := context.Background()

	db.On("QueryRow", ctx, sqlContaining("DELETE FROM age_groups"), []any{"a1"}).Return(&mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "kids.png"
		return nil
	}})

	require.NoError(t, svc.Delete(ctx, "a1"))
	assert.Equal(t, []string{"kids.png"}, store.deleted)
}

func TestColorService_Create_DuplicateName(t *testing.T) {
	db := &mockDB{}
	svc := NewColorService(db)
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("INSERT INTO colors"), mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505", ConstraintName: "colors_name_key"})

	err := svc.Create(ctx, &model.Color{ID: "c1", Name: "Red", Hex: "#ff0000"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMaterialService_Delete_InUse(t *testing.T) {
	db := &mockDB{}
	svc := NewMaterialService(db)
	ctx := context.Background()

	db.On("Exec", ctx, sqlContaining("DELETE FROM materials"), []any{"m1"}).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23503", Detail: "still referenced from variants"})

	err := svc.Delete(ctx, "m1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "still referenced")
}
