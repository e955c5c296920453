package user

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
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

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
	)
	return sqlconfig.One[User](ctx, r.exec, q)
}

// FindByEmail matches case-insensitively, the same way the unique index does.
func (r *Reader) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Raw("lower(email) = ?", strings.ToLower(strings.TrimSpace(email)))),
	)
	return sqlconfig.One[User](ctx, r.exec, q)
}

func (r *Reader) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
