package token

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "refresh_tokens"

var columns = []any{
	"id", "user_id", "token_hash", "expires_at", "created_at",
	"created_by_ip", "revoked_at", "revoked_by_ip", "replaced_by_hash",
}

// RefreshToken is a persisted refresh token. Only the SHA-256 hash of the
// token value is stored.
type RefreshToken struct {
	ID             uuid.UUID  `db:"id"`
	UserID         uuid.UUID  `db:"user_id"`
	TokenHash      string     `db:"token_hash"`
	ExpiresAt      time.Time  `db:"expires_at"`
	CreatedAt      time.Time  `db:"created_at"`
	CreatedByIP    *string    `db:"created_by_ip"`
	RevokedAt      *time.Time `db:"revoked_at"`
	RevokedByIP    *string    `db:"revoked_by_ip"`
	ReplacedByHash *string    `db:"replaced_by_hash"`
}

// IsActive reports whether the token is neither revoked nor expired at now.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

type TokenCreate struct {
	UserID      uuid.UUID
	TokenHash   string
	ExpiresAt   time.Time
	CreatedByIP string
}

type IReader interface {
	FindByHash(ctx context.Context, hash string) (*RefreshToken, error)
}

type IWriter interface {
	IReader
	FindByHashForUpdate(ctx context.Context, hash string) (*RefreshToken, error)
	Create(ctx context.Context, create *TokenCreate) (*RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID, ip string, replacedByHash *string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, ip string) (int64, error)
}
