package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/user"
)

var (
	_ IAction = (*CreateUser)(nil)
	_ IAction = (*RecordLogin)(nil)
	_ IAction = (*ChangePassword)(nil)
)

var errEmailTaken = fmt.Errorf("%w: user with this email already exists", ErrConflict)

type CreateUser struct {
	Create user.UserCreate

	Result *user.User
}

func (c *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	exists, err := writer.User.EmailExists(ctx, c.Create.Email)
	if err != nil {
		return err
	}
	if exists {
		return errEmailTaken
	}

	// A concurrent registration can still win between the check and the insert.
	c.Result, err = writer.User.Create(ctx, &c.Create)
	if errors.Is(err, ErrConflict) {
		return errEmailTaken
	}
	return err
}

type RecordLogin struct {
	UserID uuid.UUID
	At     time.Time
}

func (r *RecordLogin) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.User.SetLastLogin(ctx, r.UserID, r.At)
}

// ChangePassword stores the new hash and signs the user out of every session.
type ChangePassword struct {
	UserID       uuid.UUID
	PasswordHash string
	IP           string
}

func (c *ChangePassword) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.User.SetPasswordHash(ctx, c.UserID, c.PasswordHash); err != nil {
		return err
	}
	_, err := writer.Token.RevokeAllForUser(ctx, c.UserID, c.IP)
	return err
}
