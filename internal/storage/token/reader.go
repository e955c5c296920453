package token

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

func (r *Reader) FindByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(sqlconfig.Col("token_hash").EQ(psql.Arg(hash))),
	)
	return sqlconfig.One[RefreshToken](ctx, r.exec, q)
}
