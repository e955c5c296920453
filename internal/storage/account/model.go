package account

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "accounts"

var columns = []any{"id", "user_id", "name", "type", "currency", "balance", "is_deleted", "created_at", "updated_at"}

// Type is the kind of financial account.
type Type int16

const (
	TypeChecking Type = iota
	TypeSavings
	TypeCredit
	TypeInvestment
	TypeCash
)

var typeNames = [...]string{"Checking", "Savings", "Credit", "Investment", "Cash"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

func (t Type) Valid() bool {
	return t >= TypeChecking && t <= TypeCash
}

// Account represents an account record.
type Account struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Name      string          `db:"name"`
	Type      Type            `db:"type"`
	Currency  string          `db:"currency"`
	Balance   decimal.Decimal `db:"balance"`
	IsDeleted bool            `db:"is_deleted"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID         uuid.UUID
	Name           string
	Type           Type
	Currency       string
	InitialBalance decimal.Decimal
}

// AccountUpdate carries the user-editable fields; unset fields are left alone.
type AccountUpdate struct {
	Name     omit.Val[string]
	Type     omit.Val[Type]
	Currency omit.Val[string]
}

// IReader is the read side of the accounts table.
type IReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

// IWriter is the transactional side of the accounts table.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, update *AccountUpdate) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
