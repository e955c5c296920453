package account

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

// FindByID returns a live account owned by userID.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	return sqlconfig.One[Account](ctx, r.exec, psql.Select(ownedAccount(userID, id)...))
}

// List returns the user's live accounts ordered by name. A zero limit returns all of them.
func (r *Reader) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(sqlconfig.Col("user_id").EQ(psql.Arg(filter.UserID))),
		sm.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
		sm.OrderBy(sqlconfig.Col("name")).Asc(),
		sm.OrderBy(sqlconfig.Col("id")).Asc(),
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	return sqlconfig.All[Account](ctx, r.exec, psql.Select(queryMods...))
}

func ownedAccount(userID, id uuid.UUID) []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		sm.Where(sqlconfig.Col("user_id").EQ(psql.Arg(userID))),
		sm.Where(sqlconfig.Col("is_deleted").EQ(psql.Arg(false))),
	}
}
