package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage/account"
)

func TestCreateAccount_DefaultsCurrency(t *testing.T) {
	d := newTestDeps()
	svc := NewAccountService(d.deps)

	userID := newID()
	d.operator.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateAccount) bool {
		return a.Create.UserID == userID &&
			a.Create.Name == "Everyday" &&
			a.Create.Currency == "CAD" &&
			a.Create.InitialBalance.Equal(decimal.NewFromInt(100))
	})).Run(func(args mock.Arguments) {
		a := args.Get(1).(*actions.CreateAccount)
		a.Result = &account.Account{ID: newID(), Name: a.Create.Name, Currency: a.Create.Currency, Balance: a.Create.InitialBalance}
	}).Return(nil)

	created, err := svc.CreateAccount(context.Background(), userID, AccountCreate{
		Name:           " Everyday ",
		Type:           account.TypeChecking,
		InitialBalance: decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.Equal(t, "CAD", created.Currency)
	assert.Equal(t, []events.Type{events.AccountCreated}, d.events.types())
}

func TestCreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name   string
		create AccountCreate
	}{
		{"blank name", AccountCreate{Name: "  ", Type: account.TypeSavings}},
		{"bad type", AccountCreate{Name: "Savings", Type: account.Type(9)}},
		{"bad currency", AccountCreate{Name: "Savings", Type: account.TypeSavings, Currency: "C4D"}},
		{"long currency", AccountCreate{Name: "Savings", Type: account.TypeSavings, Currency: "CADX"}},
		{"negative balance", AccountCreate{Name: "Savings", Type: account.TypeSavings, InitialBalance: decimal.NewFromInt(-5)}},
		{"sub-cent balance", AccountCreate{Name: "Savings", Type: account.TypeSavings, InitialBalance: decimal.RequireFromString("10.005")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			svc := NewAccountService(d.deps)

			_, err := svc.CreateAccount(context.Background(), newID(), tt.create)

			assert.ErrorIs(t, err, ErrValidation)
			d.operator.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := normalizeCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)
}

func TestListAccounts_Pagination(t *testing.T) {
	d := newTestDeps()
	svc := NewAccountService(d.deps)

	rows := make([]*account.Account, 3)
	for i := range rows {
		rows[i] = &account.Account{ID: newID(), Name: "A"}
	}
	d.accounts.On("List", mock.Anything, mock.MatchedBy(func(f *account.AccountFilter) bool {
		return f.Limit == 3 && f.Offset == 4
	})).Return(rows, nil)

	accounts, next, err := svc.ListAccounts(context.Background(), newID(), &AccountCursor{Position: 4, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	require.NotNil(t, next)
	assert.Equal(t, 6, next.Position)
}

func TestUpdateAccount_ConvertsToOmitFields(t *testing.T) {
	d := newTestDeps()
	svc := NewAccountService(d.deps)

	currency := "eur"
	d.operator.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.UpdateAccount) bool {
		got, ok := a.Update.Currency.Get()
		return ok && got == "EUR" && a.Update.Name.IsUnset() && a.Update.Type.IsUnset()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.UpdateAccount).Result = &account.Account{ID: newID(), Currency: "EUR"}
	}).Return(nil)

	updated, err := svc.UpdateAccount(context.Background(), newID(), newID(), AccountUpdate{Currency: &currency})

	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Currency)
}

func TestGetAccountSummary(t *testing.T) {
	d := newTestDeps()
	svc := NewAccountService(d.deps)

	d.accounts.On("List", mock.Anything, mock.Anything).Return([]*account.Account{
		{Type: account.TypeSavings, Balance: decimal.NewFromInt(500)},
		{Type: account.TypeChecking, Balance: decimal.NewFromInt(250)},
		{Type: account.TypeSavings, Balance: decimal.NewFromInt(100)},
	}, nil)

	summary, err := svc.GetAccountSummary(context.Background(), newID())

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalAccounts)
	assert.True(t, summary.TotalBalance.Equal(decimal.NewFromInt(850)))
	require.Len(t, summary.ByType, 2)
	assert.Equal(t, account.TypeChecking, summary.ByType[0].Type)
	assert.Equal(t, 2, summary.ByType[1].Count)
	assert.True(t, summary.ByType[1].Balance.Equal(decimal.NewFromInt(600)))
}
