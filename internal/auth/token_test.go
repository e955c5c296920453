package auth

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(now time.Time) *TokenService {
	s := NewTokenService(TokenConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		Issuer:          "budgetforge",
		Audience:        "budgetforge-clients",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	s.now = func() time.Time { return now }
	return s
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestTokenService(now)
	userID := uuid.Must(uuid.NewV4())

	issued, err := s.IssueAccessToken(userID, "ada@example.com", []string{"User"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute).UTC(), issued.ExpiresAt)

	claims, err := s.ValidateAccessToken(issued.Value)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, []string{"User"}, claims.Roles)

	gotID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	s := newTestTokenService(issuedAt)
	userID := uuid.Must(uuid.NewV4())

	issued, err := s.IssueAccessToken(userID, "ada@example.com", nil)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateAccessToken(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := s.ValidateExpiredAccessToken(issued.Value)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenService_WrongSecretOrAudience(t *testing.T) {
	now := time.Now()
	issued, err := newTestTokenService(now).IssueAccessToken(uuid.Must(uuid.NewV4()), "a@b.c", nil)
	require.NoError(t, err)

	otherSecret := newTestTokenService(now)
	otherSecret.cfg.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = otherSecret.ValidateAccessToken(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = otherSecret.ValidateExpiredAccessToken(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherAudience := newTestTokenService(now)
	otherAudience.cfg.Audience = "someone-else"
	_, err = otherAudience.ValidateAccessToken(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = otherAudience.ValidateExpiredAccessToken(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_NewRefreshToken(t *testing.T) {
	now := time.Now()
	s := newTestTokenService(now)

	a, err := s.NewRefreshToken()
	require.NoError(t, err)
	b, err := s.NewRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a.Value, b.Value)
	assert.Len(t, a.Hash, 64)
	assert.Equal(t, HashRefreshToken(a.Value), a.Hash)
	assert.Equal(t, now.UTC().Add(7*24*time.Hour), a.ExpiresAt)
}
