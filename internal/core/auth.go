package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/platform"
)

// Claims are the JWT claims issued to admin users.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db        DB
	jwtSecret []byte
	jwtIssuer string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(db DB, jwtSecret, jwtIssuer string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// CreateAdmin hashes the password and inserts a new admin user.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name, role string) (*model.AdminUser, error) {
	if len(password) < 8 {
		return nil, invalidf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if role == "" {
		role = "admin"
	}
	u := &model.AdminUser{
		ID:           platform.NewID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO admin_users (id, email, password_hash, name, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.CreatedAt,
	)
	if err != nil {
		return nil, dbError(err, "create admin %s", u.Email)
	}
	return u, nil
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.AdminUser, error) {
	var u model.AdminUser
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, created_at FROM admin_users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.IssueToken(&u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, &u, nil
}

// IssueToken creates an HS256 token for the user.
func (s *AuthService) IssueToken(u *model.AdminUser) (string, error) {
	now := s.now()
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return s.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id string) (*model.AdminUser, error) {
	var u model.AdminUser
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, created_at FROM admin_users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, dbError(err, "get admin %s", id)
	}
	return &u, nil
}
