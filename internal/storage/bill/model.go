package bill

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/billing"
)

const (
	billTable    = "bills"
	paymentTable = "bill_payments"
)

var billColumns = []any{
	"id", "user_id", "name", "amount", "due_date", "is_recurring", "frequency",
	"category", "auto_pay", "is_active", "created_at", "last_paid_at",
}

var paymentColumns = []any{"id", "bill_id", "paid_at", "amount", "notes"}

// Bill is a bill owed by a user. DueDate is a civil date at UTC midnight.
type Bill struct {
	ID          uuid.UUID          `db:"id"`
	UserID      uuid.UUID          `db:"user_id"`
	Name        string             `db:"name"`
	Amount      decimal.Decimal    `db:"amount"`
	DueDate     time.Time          `db:"due_date"`
	IsRecurring bool               `db:"is_recurring"`
	Frequency   *billing.Frequency `db:"frequency"`
	Category    *string            `db:"category"`
	AutoPay     bool               `db:"auto_pay"`
	IsActive    bool               `db:"is_active"`
	CreatedAt   time.Time          `db:"created_at"`
	LastPaidAt  *time.Time         `db:"last_paid_at"`
}

// Schedule returns the fields a payment acts on.
func (b *Bill) Schedule() billing.Schedule {
	return billing.Schedule{
		DueDate:     b.DueDate,
		IsRecurring: b.IsRecurring,
		Frequency:   b.Frequency,
		IsActive:    b.IsActive,
		LastPaidAt:  b.LastPaidAt,
	}
}

// Payment is one recorded payment against a bill.
type Payment struct {
	ID     uuid.UUID       `db:"id"`
	BillID uuid.UUID       `db:"bill_id"`
	PaidAt time.Time       `db:"paid_at"`
	Amount decimal.Decimal `db:"amount"`
	Notes  *string         `db:"notes"`
}

type BillCreate struct {
	UserID      uuid.UUID
	Name        string
	Amount      decimal.Decimal
	DueDate     time.Time
	IsRecurring bool
	Frequency   *billing.Frequency
	Category    *string
	AutoPay     bool
}

type PaymentCreate struct {
	BillID uuid.UUID
	PaidAt time.Time
	Amount decimal.Decimal
	Notes  *string
}

// DueFilter selects active bills by due date. A nil From means no lower bound.
type DueFilter struct {
	UserID uuid.UUID
	From   *time.Time
	To     time.Time
}

type IReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Bill, error)
	ListDue(ctx context.Context, filter *DueFilter) ([]*Bill, error)
	ListAutoPayDue(ctx context.Context, onOrBefore time.Time) ([]*Bill, error)
	ListPayments(ctx context.Context, billID uuid.UUID) ([]*Payment, error)
	ActiveExists(ctx context.Context, userID uuid.UUID, name string, dueDate time.Time) (bool, error)
}

type IWriter interface {
	IReader
	FindActiveForUpdate(ctx context.Context, userID, id uuid.UUID) (*Bill, error)
	Create(ctx context.Context, create *BillCreate) (*Bill, error)
	SaveSchedule(ctx context.Context, id uuid.UUID, schedule billing.Schedule) error
	InsertPayment(ctx context.Context, create *PaymentCreate) (*Payment, error)
	Deactivate(ctx context.Context, userID, id uuid.UUID) error
}
