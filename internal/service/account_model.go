package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	Name      string
	Type      account.Type
	Currency  string
	Balance   decimal.Decimal
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AccountCreate struct {
	Name           string
	Type           account.Type
	Currency       string
	InitialBalance decimal.Decimal
}

// AccountUpdate holds the fields to change; nil fields are left as they are.
type AccountUpdate struct {
	Name     *string
	Type     *account.Type
	Currency *string
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

type AccountTypeSummary struct {
	Type    account.Type
	Count   int
	Balance decimal.Decimal
}

type AccountSummary struct {
	TotalAccounts int
	TotalBalance  decimal.Decimal
	ByType        []AccountTypeSummary
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:        row.ID,
		Name:      row.Name,
		Type:      row.Type,
		Currency:  row.Currency,
		Balance:   row.Balance,
		IsDeleted: row.IsDeleted,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
