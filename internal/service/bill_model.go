package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
)

type Bill struct {
	ID          uuid.UUID
	Name        string
	Amount      decimal.Decimal
	DueDate     time.Time
	IsRecurring bool
	Frequency   *billing.Frequency
	Category    *string
	AutoPay     bool
	IsActive    bool
	CreatedAt   time.Time
	LastPaidAt  *time.Time
}

// UpcomingBill is a bill annotated with how far away its due date is.
type UpcomingBill struct {
	Bill
	DaysUntilDue int
	Status       billing.Status
}

type BillPayment struct {
	ID     uuid.UUID
	PaidAt time.Time
	Amount decimal.Decimal
	Notes  *string
}

// BillDetails is a bill with its payment history, newest first.
type BillDetails struct {
	Bill
	DaysUntilDue int
	Status       billing.Status
	Payments     []BillPayment
}

type BillCreate struct {
	Name        string
	Amount      decimal.Decimal
	DueDate     time.Time
	IsRecurring bool
	Frequency   *billing.Frequency
	Category    *string
	AutoPay     bool
}

type BillPay struct {
	Amount    decimal.Decimal
	PaidAt    *time.Time
	Notes     *string
	AccountID *uuid.UUID
}

// BillPaymentResult is the outcome of paying a bill. Transaction is set when
// the payment was posted to an account.
type BillPaymentResult struct {
	Payment     BillPayment
	Bill        Bill
	Transaction *Transaction
}

// UpcomingQuery selects bills due in the next Days days.
type UpcomingQuery struct {
	Days           int
	IncludeOverdue bool
}

func billFromStorage(row *bill.Bill) Bill {
	return Bill{
		ID:          row.ID,
		Name:        row.Name,
		Amount:      row.Amount,
		DueDate:     row.DueDate,
		IsRecurring: row.IsRecurring,
		Frequency:   row.Frequency,
		Category:    row.Category,
		AutoPay:     row.AutoPay,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		LastPaidAt:  row.LastPaidAt,
	}
}

func paymentFromStorage(row *bill.Payment) BillPayment {
	return BillPayment{
		ID:     row.ID,
		PaidAt: row.PaidAt,
		Amount: row.Amount,
		Notes:  row.Notes,
	}
}
