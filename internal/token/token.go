// Package token issues and verifies the JWT access/refresh pair used for
// API authentication. Access tokens carry the actor's identity and a
// username claim; refresh tokens carry a jti that must also be present in
// the refresh-token store to be honored.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blogapi/internal/models"
)

// Token type values embedded in the claims so an access token cannot be
// replayed against the refresh endpoint and vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	// ErrInvalidToken covers bad signatures, wrong algorithms, expired
	// tokens, and malformed claims.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims captures the verified payload of a token.
type Claims struct {
	UserID   uuid.UUID
	Username string
	Type     string
	JTI      string
	ExpiresAt time.Time
}

// rawClaims is the internal claims type used for JWT parsing.
type rawClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
}

// Service signs and verifies tokens with an HMAC secret.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService creates a token service. now may be nil to use time.Now.
func NewService(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}
}

// IssueAccess signs a short-lived access token for the user.
func (s *Service) IssueAccess(user *models.User) (string, error) {
	return s.sign(user, TypeAccess, s.accessTTL)
}

// IssueRefresh signs a refresh token for the user and returns the token
// together with its jti and expiry, so the caller can record it in the
// refresh-token store.
func (s *Service) IssueRefresh(user *models.User) (token, jti string, expiresAt time.Time, err error) {
	jti = uuid.NewString()
	now := s.now()
	expiresAt = now.Add(s.refreshTTL)

	claims := rawClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: TypeRefresh,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return token, jti, expiresAt, nil
}

func (s *Service) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := rawClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  user.Username,
		TokenType: tokenType,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return token, nil
}

// Verify parses a token, checks the signature and expiry, and requires
// the given token type. Any failure maps to ErrInvalidToken.
func (s *Service) Verify(tokenString, wantType string) (*Claims, error) {
	var parsed rawClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if parsed.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(parsed.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if parsed.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    userID,
		Username:  parsed.Username,
		Type:      parsed.TokenType,
		JTI:       parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
