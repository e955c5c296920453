package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const refreshTokenBytes = 64

// Claims are the JWT claims of an access token. The subject is the user id.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.FromString(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject", ErrInvalidToken)
	}
	return id, nil
}

type TokenConfig struct {
	Secret          string
	Issuer          string
	Audience        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// TokenService issues and validates HS256 access tokens and opaque refresh tokens.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

// IssuedToken is a freshly minted token and its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// RefreshToken is a new refresh token. Only Hash is persisted.
type RefreshToken struct {
	Value     string
	Hash      string
	ExpiresAt time.Time
}

func (s *TokenService) IssueAccessToken(userID uuid.UUID, email string, roles []string) (IssuedToken, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)

	claims := Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.Must(uuid.NewV4()).String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken checks signature, issuer, audience and lifetime.
func (s *TokenService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// ValidateExpiredAccessToken is ValidateAccessToken without the lifetime
// check, used when trading an expired access token for a new one.
func (s *TokenService) ValidateExpiredAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Issuer != s.cfg.Issuer || !slices.Contains(claims.Audience, s.cfg.Audience) {
		return nil, fmt.Errorf("%w: issuer or audience", ErrInvalidToken)
	}
	return claims, nil
}

func (s *TokenService) NewRefreshToken() (RefreshToken, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}
	value := base64.StdEncoding.EncodeToString(buf)

	return RefreshToken{
		Value:     value,
		Hash:      HashRefreshToken(value),
		ExpiresAt: s.now().UTC().Add(s.cfg.RefreshTokenTTL),
	}, nil
}

// HashRefreshToken is the hex SHA-256 digest stored in place of the token.
func HashRefreshToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func (s *TokenService) keyFunc(*jwt.Token) (interface{}, error) {
	return []byte(s.cfg.Secret), nil
}
