package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

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

func (w *Writer) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	queryMods := append(ownedTransaction(userID, id), sm.ForUpdate())
	return sqlconfig.One[Transaction](ctx, w.exec, psql.Select(queryMods...))
}

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	transactionDate := create.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now().UTC()
	}

	q := psql.Insert(
		im.Into(tableName, "account_id", "type", "description", "category", "amount", "transaction_date"),
		im.Values(
			psql.Arg(create.AccountID),
			psql.Arg(create.Type),
			psql.Arg(create.Description),
			psql.Arg(create.Category),
			psql.Arg(create.Amount),
			psql.Arg(transactionDate),
		),
		im.Returning(columns...),
	)
	return sqlconfig.One[Transaction](ctx, w.exec, q)
}

// Update writes the set fields and returns the row as stored.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(tableName),
		um.SetCol("updated_at").To(sqlconfig.Now()),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		um.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
		um.Returning(columns...),
	}
	if transactionType, ok := update.Type.Get(); ok {
		queryMods = append(queryMods, um.SetCol("type").ToArg(transactionType))
	}
	if description, ok := update.Description.Get(); ok {
		queryMods = append(queryMods, um.SetCol("description").ToArg(description))
	}
	if category, ok := update.Category.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category").ToArg(category))
	}
	if amount, ok := update.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(amount))
	}
	if transactionDate, ok := update.TransactionDate.Get(); ok {
		queryMods = append(queryMods, um.SetCol("transaction_date").ToArg(transactionDate))
	}

	return sqlconfig.One[Transaction](ctx, w.exec, psql.Update(queryMods...))
}

func (w *Writer) SoftDelete(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("is_deleted").ToArg(true),
		um.SetCol("updated_at").To(sqlconfig.Now()),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		um.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}
