package core

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/edvin/shopadmin/internal/model"
)

func adminRow(id, email, hash string) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = email
		*(dest[2].(*string)) = hash
		*(dest[3].(*string)) = "Ops"
		*(dest[4].(*string)) = "admin"
		*(dest[5].(*time.Time)) = time.Now()
		return nil
	}}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(&mockDB{}, "test-secret", "shopadmin", time.Hour)

	token, err := svc.IssueToken(&model.AdminUser{ID: "u1", Email: "ops@example.com", Role: "admin"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "shopadmin", claims.Issuer)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := NewAuthService(&mockDB{}, "test-secret", "shopadmin", time.Hour)
	issued := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.IssueToken(&model.AdminUser{ID: "u1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	svc := NewAuthService(&mockDB{}, "test-secret", "shopadmin", time.Hour)

	other := NewAuthService(&mockDB{}, "other-secret", "shopadmin", time.Hour)
	wrongSecret, err := other.IssueToken(&model.AdminUser{ID: "u1"})
	require.NoError(t, err)

	otherIssuer := NewAuthService(&mockDB{}, "test-secret", "someone-else", time.Hour)
	wrongIssuer, err := otherIssuer.IssueToken(&model.AdminUser{ID: "u1"})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": wrongSecret,
		"wrong issuer": wrongIssuer,
		"alg none":     none,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Contains(t, err.Error(), "invalid token")
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	db := &mockDB{}
	svc := NewAuthService(db, "test-secret", "shopadmin", time.Hour)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	db.On("QueryRow", ctx, sqlContaining("FROM admin_users WHERE email"), []any{"ops@example.com"}).
		Return(adminRow("u1", "ops@example.com", string(hash)))
	db.On("QueryRow", ctx, sqlContaining("FROM admin_users WHERE email"), []any{"nobody@example.com"}).
		Return(errRow(pgx.ErrNoRows))

	token, user, err := svc.Login(ctx, "  OPS@example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)

	_, _, err = svc.Login(ctx, "ops@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	db := &mockDB{}
	svc := NewAuthService(db, "test-secret", "shopadmin", time.Hour)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "ops@example.com", "short", "Ops", "")
	assert.ErrorIs(t, err, ErrInvalid)

	db.On("Exec", ctx, sqlContaining("INSERT INTO admin_users"), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	u, err := svc.CreateAdmin(ctx, " Ops@Example.com", "long enough", "Ops", "")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", u.Email)
	assert.Equal(t, "admin", u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long enough")))
}
