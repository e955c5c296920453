package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
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

// FindByIDForUpdate reads the account and locks its row until the transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	queryMods := append(ownedAccount(userID, id), sm.ForUpdate())
	return sqlconfig.One[Account](ctx, w.exec, psql.Select(queryMods...))
}

func (w *Writer) Create(ctx context.Context, create *AccountCreate) (*Account, error) {
	q := psql.Insert(
		im.Into(tableName, "user_id", "name", "type", "currency", "balance"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Name),
			psql.Arg(create.Type),
			psql.Arg(create.Currency),
			psql.Arg(create.InitialBalance),
		),
		im.Returning(columns...),
	)
	return sqlconfig.One[Account](ctx, w.exec, q)
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *AccountUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(tableName),
		um.SetCol("updated_at").To(sqlconfig.Now()),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		um.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
	}
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
	}
	if accountType, ok := update.Type.Get(); ok {
		queryMods = append(queryMods, um.SetCol("type").ToArg(accountType))
	}
	if currency, ok := update.Currency.Get(); ok {
		queryMods = append(queryMods, um.SetCol("currency").ToArg(currency))
	}

	return sqlconfig.ExecOne(ctx, w.exec, psql.Update(queryMods...))
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

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("updated_at").To(sqlconfig.Now()),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}
