package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/token"
)

var (
	_ IAction = (*StoreRefreshToken)(nil)
	_ IAction = (*RotateRefreshToken)(nil)
	_ IAction = (*RevokeRefreshTokens)(nil)
)

type StoreRefreshToken struct {
	Create token.TokenCreate
}

func (s *StoreRefreshToken) Perform(ctx context.Context, writer *storage.Writer) error {
	_, err := writer.Token.Create(ctx, &s.Create)
	return err
}

// RotateRefreshToken swaps a live refresh token of UserID for a new one.
type RotateRefreshToken struct {
	UserID  uuid.UUID
	OldHash string
	Next    token.TokenCreate
	IP      string
	Now     time.Time
}

func (r *RotateRefreshToken) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Token.FindByHashForUpdate(ctx, r.OldHash)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	if err != nil {
		return err
	}
	if current.UserID != r.UserID || !current.IsActive(r.Now) {
		return fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	nextHash := r.Next.TokenHash
	if err = writer.Token.Revoke(ctx, current.ID, r.IP, &nextHash); err != nil {
		return err
	}

	r.Next.UserID = r.UserID
	_, err = writer.Token.Create(ctx, &r.Next)
	return err
}

type RevokeRefreshTokens struct {
	UserID uuid.UUID
	IP     string

	Revoked int64
}

func (r *RevokeRefreshTokens) Perform(ctx context.Context, writer *storage.Writer) error {
	revoked, err := writer.Token.RevokeAllForUser(ctx, r.UserID, r.IP)
	if err != nil {
		return err
	}
	r.Revoked = revoked
	return nil
}
