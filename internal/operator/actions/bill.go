package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/ledger"
	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

var (
	_ IAction = (*CreateBill)(nil)
	_ IAction = (*PayBill)(nil)
	_ IAction = (*DeactivateBill)(nil)
)

var errDuplicateBill = fmt.Errorf("%w: a bill with the same name and due date already exists", ErrConflict)

type CreateBill struct {
	Create bill.BillCreate

	Result *bill.Bill
}

func (c *CreateBill) Perform(ctx context.Context, writer *storage.Writer) error {
	exists, err := writer.Bill.ActiveExists(ctx, c.Create.UserID, c.Create.Name, billing.DateOf(c.Create.DueDate))
	if err != nil {
		return err
	}
	if exists {
		return errDuplicateBill
	}

	c.Result, err = writer.Bill.Create(ctx, &c.Create)
	if errors.Is(err, ErrConflict) {
		return errDuplicateBill
	}
	return err
}

// PayBill records a payment and moves the bill to its next state. With an
// AccountID the payment is also posted to that account as a Payment
// transaction.
type PayBill struct {
	UserID    uuid.UUID
	BillID    uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
	Notes     *string
	AccountID *uuid.UUID

	Payment     *bill.Payment
	Bill        *bill.Bill
	Transaction *transaction.Transaction
}

func (p *PayBill) Perform(ctx context.Context, writer *storage.Writer) error {
	b, err := writer.Bill.FindActiveForUpdate(ctx, p.UserID, p.BillID)
	if err != nil {
		return err
	}

	p.Payment, err = writer.Bill.InsertPayment(ctx, &bill.PaymentCreate{
		BillID: b.ID,
		PaidAt: p.PaidAt,
		Amount: p.Amount,
		Notes:  p.Notes,
	})
	if err != nil {
		return err
	}

	schedule := billing.ApplyPayment(b.Schedule(), p.PaidAt)
	if err = writer.Bill.SaveSchedule(ctx, b.ID, schedule); err != nil {
		return err
	}
	b.DueDate = schedule.DueDate
	b.IsActive = schedule.IsActive
	b.LastPaidAt = schedule.LastPaidAt
	p.Bill = b

	if p.AccountID == nil {
		return nil
	}
	return p.postToAccount(ctx, writer, b)
}

func (p *PayBill) postToAccount(ctx context.Context, writer *storage.Writer, b *bill.Bill) error {
	account, err := writer.Account.FindByIDForUpdate(ctx, p.UserID, *p.AccountID)
	if err != nil {
		return err
	}

	p.Transaction, err = writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		AccountID:       account.ID,
		Type:            transaction.TypePayment,
		Description:     "Bill payment: " + b.Name,
		Category:        b.Category,
		Amount:          p.Amount,
		TransactionDate: p.PaidAt,
	})
	if err != nil {
		return err
	}

	newBalance := ledger.Post(account.Balance, transaction.TypePayment, p.Amount)
	return writer.Account.UpdateBalance(ctx, account.ID, newBalance)
}

type DeactivateBill struct {
	UserID uuid.UUID
	BillID uuid.UUID
}

func (d *DeactivateBill) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Bill.Deactivate(ctx, d.UserID, d.BillID)
}
