package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"

	"github.com/carson-networks/budgetforge/internal/storage/sqlconfig"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return sqlconfig.One[Transaction](ctx, r.exec, psql.Select(ownedTransaction(userID, id)...))
}

// List returns live transactions newest first. Callers that paginate ask for
// one more row than they show to detect a following page.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(ownedBy(filter.UserID)),
		sm.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
	}
	if filter.AccountID != nil {
		queryMods = append(queryMods, sm.Where(sqlconfig.Col("account_id").EQ(psql.Arg(*filter.AccountID))))
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(sqlconfig.Col("transaction_date").GTE(psql.Arg(*filter.From))))
	}
	if filter.To != nil {
		queryMods = append(queryMods, sm.Where(sqlconfig.Col("transaction_date").LTE(psql.Arg(*filter.To))))
	}
	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(sqlconfig.Col("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy(sqlconfig.Col("transaction_date")).Desc(),
		sm.OrderBy(sqlconfig.Col("id")).Desc(),
	)

	return sqlconfig.All[Transaction](ctx, r.exec, psql.Select(queryMods...))
}

func ownedTransaction(userID, id uuid.UUID) []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		sm.Where(ownedBy(userID)),
		sm.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
	}
}

// ownedBy restricts rows to transactions posted against the user's live accounts.
func ownedBy(userID uuid.UUID) dialect.Expression {
	return psql.Raw("account_id IN (SELECT id FROM accounts WHERE user_id = ? AND NOT is_deleted)", userID)
}
