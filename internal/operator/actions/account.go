package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/account"
)

var (
	_ IAction = (*CreateAccount)(nil)
	_ IAction = (*UpdateAccount)(nil)
	_ IAction = (*DeleteAccount)(nil)
)

type CreateAccount struct {
	Create account.AccountCreate

	Result *account.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	var err error
	c.Result, err = writer.Account.Create(ctx, &c.Create)
	return err
}

type UpdateAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Update    account.AccountUpdate

	Result *account.Account
}

func (u *UpdateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindByIDForUpdate(ctx, u.UserID, u.AccountID); err != nil {
		return err
	}

	if err := writer.Account.Update(ctx, u.AccountID, &u.Update); err != nil {
		return err
	}

	var err error
	u.Result, err = writer.Account.FindByID(ctx, u.UserID, u.AccountID)
	return err
}

type DeleteAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Account.FindByIDForUpdate(ctx, d.UserID, d.AccountID); err != nil {
		return err
	}
	return writer.Account.SoftDelete(ctx, d.AccountID)
}
