package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/ledger"
	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

var (
	_ IAction = (*CreateTransaction)(nil)
	_ IAction = (*UpdateTransaction)(nil)
	_ IAction = (*DeleteTransaction)(nil)
)

// CreateTransaction records a transaction and posts it to the account balance.
type CreateTransaction struct {
	UserID uuid.UUID
	Create transaction.TransactionCreate

	Result *transaction.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Account.FindByIDForUpdate(ctx, t.UserID, t.Create.AccountID)
	if err != nil {
		return err
	}

	t.Result, err = writer.Transaction.Insert(ctx, &t.Create)
	if err != nil {
		return err
	}

	newBalance := ledger.Post(account.Balance, t.Result.Type, t.Result.Amount)
	return writer.Account.UpdateBalance(ctx, account.ID, newBalance)
}

// UpdateTransaction reverses the stored transaction, applies the edit, and
// posts the edited version.
type UpdateTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Update        transaction.TransactionUpdate

	Result *transaction.Transaction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, t.UserID, t.TransactionID)
	if err != nil {
		return err
	}

	account, err := writer.Account.FindByIDForUpdate(ctx, t.UserID, existing.AccountID)
	if err != nil {
		return err
	}

	t.Result, err = writer.Transaction.Update(ctx, existing.ID, &t.Update)
	if err != nil {
		return err
	}

	newBalance := ledger.Reverse(account.Balance, existing.Type, existing.Amount)
	newBalance = ledger.Post(newBalance, t.Result.Type, t.Result.Amount)
	return writer.Account.UpdateBalance(ctx, account.ID, newBalance)
}

type DeleteTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID

	Deleted *transaction.Transaction
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, t.UserID, t.TransactionID)
	if err != nil {
		return err
	}

	account, err := writer.Account.FindByIDForUpdate(ctx, t.UserID, existing.AccountID)
	if err != nil {
		return err
	}

	if err = writer.Transaction.SoftDelete(ctx, existing.ID); err != nil {
		return err
	}
	t.Deleted = existing

	newBalance := ledger.Reverse(account.Balance, existing.Type, existing.Amount)
	return writer.Account.UpdateBalance(ctx, account.ID, newBalance)
}
