package bill

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/storage/sqlconfig"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindActiveForUpdate locks an active bill owned by userID.
func (w *Writer) FindActiveForUpdate(ctx context.Context, userID, id uuid.UUID) (*Bill, error) {
	q := psql.Select(
		sm.Columns(billColumns...),
		sm.From(billTable),
		sm.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		sm.Where(sqlconfig.Col("user_id").EQ(psql.Arg(userID))),
		sm.Where(sqlconfig.Col("is_active").EQ(psql.Arg(true))),
		sm.ForUpdate(),
	)
	return sqlconfig.One[Bill](ctx, w.exec, q)
}

func (w *Writer) Create(ctx context.Context, create *BillCreate) (*Bill, error) {
	q := psql.Insert(
		im.Into(billTable, "user_id", "name", "amount", "due_date", "is_recurring", "frequency", "category", "auto_pay"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Name),
			psql.Arg(create.Amount),
			psql.Arg(billing.DateOf(create.DueDate)),
			psql.Arg(create.IsRecurring),
			psql.Arg(create.Frequency),
			psql.Arg(create.Category),
			psql.Arg(create.AutoPay),
		),
		im.Returning(billColumns...),
	)
	return sqlconfig.One[Bill](ctx, w.exec, q)
}

// SaveSchedule persists the result of applying a payment.
func (w *Writer) SaveSchedule(ctx context.Context, id uuid.UUID, schedule billing.Schedule) error {
	q := psql.Update(
		um.Table(billTable),
		um.SetCol("due_date").ToArg(billing.DateOf(schedule.DueDate)),
		um.SetCol("is_active").ToArg(schedule.IsActive),
		um.SetCol("last_paid_at").ToArg(schedule.LastPaidAt),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}

func (w *Writer) InsertPayment(ctx context.Context, create *PaymentCreate) (*Payment, error) {
	q := psql.Insert(
		im.Into(paymentTable, "bill_id", "paid_at", "amount", "notes"),
		im.Values(
			psql.Arg(create.BillID),
			psql.Arg(create.PaidAt),
			psql.Arg(create.Amount),
			psql.Arg(create.Notes),
		),
		im.Returning(paymentColumns...),
	)
	return sqlconfig.One[Payment](ctx, w.exec, q)
}

func (w *Writer) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	q := psql.Update(
		um.Table(billTable),
		um.SetCol("is_active").ToArg(false),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		um.Where(sqlconfig.Col("user_id").EQ(psql.Arg(userID))),
		um.Where(sqlconfig.Col("is_active").EQ(psql.Arg(true))),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}
