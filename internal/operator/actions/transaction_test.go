package actions

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/account"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

func balanceOf(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestCreateTransaction_PostsExpense(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	acct := &account.Account{ID: uuid.Must(uuid.NewV4()), UserID: userID, Balance: decimal.NewFromInt(100)}

	accounts := &mockAccountWriter{}
	transactions := &mockTransactionWriter{}
	accounts.On("FindByIDForUpdate", ctx, userID, acct.ID).Return(acct, nil)
	transactions.On("Insert", ctx, mock.AnythingOfType("*transaction.TransactionCreate")).
		Return(&transaction.Transaction{ID: uuid.Must(uuid.NewV4()), AccountID: acct.ID, Type: transaction.TypeExpense, Amount: decimal.RequireFromString("12.34")}, nil)
	accounts.On("UpdateBalance", ctx, acct.ID, balanceOf("87.66")).Return(nil)

	action := &CreateTransaction{
		UserID: userID,
		Create: transaction.TransactionCreate{AccountID: acct.ID, Type: transaction.TypeExpense, Amount: decimal.RequireFromString("12.34")},
	}
	err := action.Perform(ctx, &storage.Writer{Account: accounts, Transaction: transactions})

	require.NoError(t, err)
	require.NotNil(t, action.Result)
	accounts.AssertExpectations(t)
	transactions.AssertExpectations(t)
}

func TestCreateTransaction_AccountMissing(t *testing.T) {
	ctx := context.Background()
	accounts := &mockAccountWriter{}
	transactions := &mockTransactionWriter{}
	accounts.On("FindByIDForUpdate", ctx, mock.Anything, mock.Anything).Return(nil, storage.ErrNotFound)

	action := &CreateTransaction{UserID: uuid.Must(uuid.NewV4())}
	err := action.Perform(ctx, &storage.Writer{Account: accounts, Transaction: transactions})

	assert.ErrorIs(t, err, ErrNotFound)
	transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateTransaction_ReversesThenReposts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	acct := &account.Account{ID: uuid.Must(uuid.NewV4()), Balance: decimal.NewFromInt(80)}
	existing := &transaction.Transaction{ID: uuid.Must(uuid.NewV4()), AccountID: acct.ID, Type: transaction.TypeExpense, Amount: decimal.NewFromInt(20)}
	updated := *existing
	updated.Type = transaction.TypeIncome
	updated.Amount = decimal.NewFromInt(50)

	accounts := &mockAccountWriter{}
	transactions := &mockTransactionWriter{}
	transactions.On("FindByIDForUpdate", ctx, userID, existing.ID).Return(existing, nil)
	accounts.On("FindByIDForUpdate", ctx, userID, acct.ID).Return(acct, nil)
	transactions.On("Update", ctx, existing.ID, mock.AnythingOfType("*transaction.TransactionUpdate")).Return(&updated, nil)
	accounts.On("UpdateBalance", ctx, acct.ID, balanceOf("150")).Return(nil)

	action := &UpdateTransaction{
		UserID:        userID,
		TransactionID: existing.ID,
		Update: transaction.TransactionUpdate{
			Type:   omit.From(transaction.TypeIncome),
			Amount: omit.From(decimal.NewFromInt(50)),
		},
	}
	err := action.Perform(ctx, &storage.Writer{Account: accounts, Transaction: transactions})

	require.NoError(t, err)
	assert.Equal(t, transaction.TypeIncome, action.Result.Type)
	accounts.AssertExpectations(t)
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	acct := &account.Account{ID: uuid.Must(uuid.NewV4()), Balance: decimal.NewFromInt(500)}
	existing := &transaction.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		AccountID:       acct.ID,
		Type:            transaction.TypeIncome,
		Amount:          decimal.NewFromInt(200),
		TransactionDate: time.Now(),
	}

	accounts := &mockAccountWriter{}
	transactions := &mockTransactionWriter{}
	transactions.On("FindByIDForUpdate", ctx, userID, existing.ID).Return(existing, nil)
	accounts.On("FindByIDForUpdate", ctx, userID, acct.ID).Return(acct, nil)
	transactions.On("SoftDelete", ctx, existing.ID).Return(nil)
	accounts.On("UpdateBalance", ctx, acct.ID, balanceOf("300")).Return(nil)

	action := &DeleteTransaction{UserID: userID, TransactionID: existing.ID}
	err := action.Perform(ctx, &storage.Writer{Account: accounts, Transaction: transactions})

	require.NoError(t, err)
	assert.Equal(t, existing, action.Deleted)
	accounts.AssertExpectations(t)
	transactions.AssertExpectations(t)
}

func TestDeleteTransaction_NotOwned(t *testing.T) {
	ctx := context.Background()
	transactions := &mockTransactionWriter{}
	transactions.On("FindByIDForUpdate", ctx, mock.Anything, mock.Anything).Return(nil, storage.ErrNotFound)

	action := &DeleteTransaction{UserID: uuid.Must(uuid.NewV4()), TransactionID: uuid.Must(uuid.NewV4())}
	err := action.Perform(ctx, &storage.Writer{Account: &mockAccountWriter{}, Transaction: transactions})

	assert.ErrorIs(t, err, ErrNotFound)
}
