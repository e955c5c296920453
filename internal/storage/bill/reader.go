package bill

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/storage/sqlconfig"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the bill whether or not it is still active.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Bill, error) {
	q := psql.Select(
		sm.Columns(billColumns...),
		sm.From(billTable),
		sm.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		sm.Where(sqlconfig.Col("user_id").EQ(psql.Arg(userID))),
	)
	return sqlconfig.One[Bill](ctx, r.exec, q)
}

// ListDue returns the user's active bills due within the filter window,
// soonest first.
func (r *Reader) ListDue(ctx context.Context, filter *DueFilter) ([]*Bill, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(billColumns...),
		sm.From(billTable),
		sm.Where(sqlconfig.Col("user_id").EQ(psql.Arg(filter.UserID))),
		sm.Where(sqlconfig.Col("is_active").EQ(psql.Arg(true))),
		sm.Where(sqlconfig.Col("due_date").LTE(psql.Arg(filter.To))),
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(sqlconfig.Col("due_date").GTE(psql.Arg(*filter.From))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(sqlconfig.Col("due_date")).Asc(),
		sm.OrderBy(sqlconfig.Col("name")).Asc(),
	)

	return sqlconfig.All[Bill](ctx, r.exec, psql.Select(queryMods...))
}

// ListAutoPayDue returns active auto-pay bills of every user that are due on
// or before the given date. Custom-frequency bills already paid for their
// current due date are left out, since paying them does not move the date.
func (r *Reader) ListAutoPayDue(ctx context.Context, onOrBefore time.Time) ([]*Bill, error) {
	q := psql.Select(
		sm.Columns(billColumns...),
		sm.From(billTable),
		sm.Where(sqlconfig.Col("is_active").EQ(psql.Arg(true))),
		sm.Where(sqlconfig.Col("auto_pay").EQ(psql.Arg(true))),
		sm.Where(sqlconfig.Col("due_date").LTE(psql.Arg(onOrBefore))),
		sm.Where(psql.Raw(
			"(frequency IS DISTINCT FROM ? OR last_paid_at IS NULL OR (last_paid_at AT TIME ZONE 'UTC')::date < due_date)",
			billing.FrequencyCustom,
		)),
		sm.OrderBy(sqlconfig.Col("due_date")).Asc(),
	)
	return sqlconfig.All[Bill](ctx, r.exec, q)
}

// ListPayments returns a bill's payments, newest first.
func (r *Reader) ListPayments(ctx context.Context, billID uuid.UUID) ([]*Payment, error) {
	q := psql.Select(
		sm.Columns(paymentColumns...),
		sm.From(paymentTable),
		sm.Where(sqlconfig.Col("bill_id").EQ(psql.Arg(billID))),
		sm.OrderBy(sqlconfig.Col("paid_at")).Desc(),
	)
	return sqlconfig.All[Payment](ctx, r.exec, q)
}

func (r *Reader) ActiveExists(ctx context.Context, userID uuid.UUID, name string, dueDate time.Time) (bool, error) {
	q := psql.Select(
		sm.Columns(billColumns...),
		sm.From(billTable),
		sm.Where(sqlconfig.Col("user_id").EQ(psql.Arg(userID))),
		sm.Where(sqlconfig.Col("is_active").EQ(psql.Arg(true))),
		sm.Where(sqlconfig.Col("name").EQ(psql.Arg(name))),
		sm.Where(sqlconfig.Col("due_date").EQ(psql.Arg(dueDate))),
		sm.Limit(1),
	)
	rows, err := sqlconfig.All[Bill](ctx, r.exec, q)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
