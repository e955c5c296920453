package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "transactions"

var columns = []any{
	"id", "account_id", "type", "description", "category", "amount",
	"transaction_date", "is_deleted", "created_at", "updated_at",
}

// Type classifies a transaction and decides its effect on the account balance.
type Type int16

const (
	TypeIncome Type = iota
	TypeExpense
	TypeTransferIn
	TypeTransferOut
	TypePayment
	TypeWithdrawal
	TypeDeposit
)

var typeNames = [...]string{"Income", "Expense", "TransferIn", "TransferOut", "Payment", "Withdrawal", "Deposit"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

func (t Type) Valid() bool {
	return t >= TypeIncome && t <= TypeDeposit
}

// ParseType maps a type name back to its value.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return 0, false
}

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       uuid.UUID       `db:"account_id"`
	Type            Type            `db:"type"`
	Description     string          `db:"description"`
	Category        *string         `db:"category"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	IsDeleted       bool            `db:"is_deleted"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	Type            Type
	Description     string
	Category        *string
	Amount          decimal.Decimal
	TransactionDate time.Time
}

// TransactionUpdate carries the editable fields of a transaction.
type TransactionUpdate struct {
	Type            omit.Val[Type]
	Description     omit.Val[string]
	Category        omit.Val[string]
	Amount          omit.Val[decimal.Decimal]
	TransactionDate omit.Val[time.Time]
}

// TransactionFilter specifies filters for listing transactions. UserID is
// always applied; everything else is optional.
type TransactionFilter struct {
	UserID          uuid.UUID
	AccountID       *uuid.UUID
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// IReader is the read side of the transactions table.
type IReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// IWriter is the transactional side of the transactions table.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
