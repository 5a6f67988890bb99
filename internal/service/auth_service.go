package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"movie-catalog-api/internal/models"
)

const (
	defaultBearerTTL  = 600 * time.Second
	defaultRefreshTTL = 86400 * time.Second
	longExpiryTTL     = 365 * 24 * time.Hour
)

// UserStore is the account storage consumed by AuthService.
// FindByEmail returns sql.ErrNoRows when no account exists.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	Create(email, passwordHash string) error
	UpdateProfile(email, firstName, lastName, dob, address string) error
}

// Claims are the JWT claims carried by both bearer and refresh tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenOptions control the lifetime of an issued token pair.
// Zero second values fall back to the defaults.
type TokenOptions struct {
	LongExpiry       bool
	BearerExpiresIn  int
	RefreshExpiresIn int
}

// AuthService handles accounts, tokens, and profiles. Redis holds the
// refresh-token revocation list; when Redis is unavailable the service
// runs without revocation tracking.
type AuthService struct {
	users  UserStore
	secret []byte
	redis  *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, rdb *redis.Client) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), redis: rdb}
}

// Register creates an account with a bcrypt password hash.
func (s *AuthService) Register(email, password string) error {
	_, err := s.users.FindByEmail(email)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(email, string(hash)); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a bearer/refresh token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string, opts TokenOptions) (*models.TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return s.issueTokens(email, opts)
}

// Refresh verifies a refresh token and issues a new pair. Tokens
// revoked by logout are rejected as invalid.
func (s *AuthService) Refresh(refreshToken string, opts TokenOptions) (*models.TokenPair, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if s.isRevoked(refreshToken) {
		return nil, ErrTokenInvalid
	}
	return s.issueTokens(claims.Email, opts)
}

// Logout records the refresh token in the revocation list until its
// natural expiry.
func (s *AuthService) Logout(refreshToken string) error {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return err
	}
	if claims.ExpiresAt != nil {
		s.revoke(refreshToken, claims.ExpiresAt.Time)
	}
	return nil
}

// Verify checks a bearer token and returns the authenticated email.
func (s *AuthService) Verify(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

// GetProfile returns the profile for email. The owner view, including
// date of birth and address, is returned only when authEmail matches.
func (s *AuthService) GetProfile(email, authEmail string) (any, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile := models.Profile{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if authEmail == "" || authEmail != email {
		return &profile, nil
	}

	var dob *string
	if user.DOB != nil {
		d := user.DOB.Format("2006-01-02")
		dob = &d
	}
	return &models.OwnerProfile{Profile: profile, DOB: dob, Address: user.Address}, nil
}

// UpdateProfile writes the four profile fields. Only the owner may
// update their profile; field validation happens before this call.
func (s *AuthService) UpdateProfile(email, authEmail, firstName, lastName, dob, address string) (*models.UpdatedProfile, error) {
	if authEmail != email {
		return nil, ErrForbidden
	}

	_, err := s.users.FindByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.users.UpdateProfile(email, firstName, lastName, dob, address); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &models.UpdatedProfile{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		DOB:       dob,
		Address:   address,
	}, nil
}

func (s *AuthService) issueTokens(email string, opts TokenOptions) (*models.TokenPair, error) {
	bearerTTL := defaultBearerTTL
	refreshTTL := defaultRefreshTTL
	if opts.LongExpiry {
		bearerTTL = longExpiryTTL
		refreshTTL = longExpiryTTL
	} else {
		if opts.BearerExpiresIn > 0 {
			bearerTTL = time.Duration(opts.BearerExpiresIn) * time.Second
		}
		if opts.RefreshExpiresIn > 0 {
			refreshTTL = time.Duration(opts.RefreshExpiresIn) * time.Second
		}
	}

	bearer, err := s.mint(email, bearerTTL)
	if err != nil {
		return nil, fmt.Errorf("sign bearer token: %w", err)
	}
	refresh, err := s.mint(email, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	bearerSeconds := int(defaultBearerTTL / time.Second)
	if opts.BearerExpiresIn > 0 {
		bearerSeconds = opts.BearerExpiresIn
	}
	refreshSeconds := int(defaultRefreshTTL / time.Second)
	if opts.RefreshExpiresIn > 0 {
		refreshSeconds = opts.RefreshExpiresIn
	}

	return &models.TokenPair{
		BearerToken:  models.Token{Token: bearer, TokenType: "Bearer", ExpiresIn: bearerSeconds},
		RefreshToken: models.Token{Token: refresh, TokenType: "Refresh", ExpiresIn: refreshSeconds},
	}, nil
}

func (s *AuthService) mint(email string, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *AuthService) revoke(token string, expiresAt time.Time) {
	if s.redis == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.redis.Set(context.Background(), revocationKey(token), "1", ttl).Err(); err != nil {
		slog.Error("failed to record revoked token", "error", err)
	}
}

func (s *AuthService) isRevoked(token string) bool {
	if s.redis == nil {
		return false
	}
	n, err := s.redis.Exists(context.Background(), revocationKey(token)).Result()
	if err != nil {
		slog.Error("failed to check revoked token", "error", err)
		return false
	}
	return n > 0
}

func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:revoked:" + hex.EncodeToString(sum[:])
}
