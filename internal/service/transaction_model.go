package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	Type            transaction.Type
	Description     string
	Category        *string
	Amount          decimal.Decimal
	TransactionDate time.Time
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type TransactionCreate struct {
	AccountID   uuid.UUID
	Type        transaction.Type
	Amount      decimal.Decimal
	Description string
	Category    *string
	Timestamp   *time.Time
}

// TransactionUpdate holds the fields to change; nil fields are left as they are.
type TransactionUpdate struct {
	Type        *transaction.Type
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Timestamp   *time.Time
}

// TransactionQuery narrows a transaction listing.
type TransactionQuery struct {
	AccountID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

type TransactionTypeSummary struct {
	Type  transaction.Type
	Count int
	Total decimal.Decimal
}

type TransactionSummary struct {
	Count         int
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Net           decimal.Decimal
	ByType        []TransactionTypeSummary
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		AccountID:       row.AccountID,
		Type:            row.Type,
		Description:     row.Description,
		Category:        row.Category,
		Amount:          row.Amount,
		TransactionDate: row.TransactionDate,
		IsDeleted:       row.IsDeleted,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
