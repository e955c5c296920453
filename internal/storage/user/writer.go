package user

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

func (w *Writer) Create(ctx context.Context, create *UserCreate) (*User, error) {
	roles := create.Roles
	if len(roles) == 0 {
		roles = []string{RoleUser}
	}

	q := psql.Insert(
		im.Into(tableName, "email", "password_hash", "first_name", "last_name", "roles"),
		im.Values(
			psql.Arg(strings.TrimSpace(create.Email)),
			psql.Arg(create.PasswordHash),
			psql.Arg(create.FirstName),
			psql.Arg(create.LastName),
			psql.Arg(strings.Join(roles, ",")),
		),
		im.Returning(columns...),
	)
	return sqlconfig.One[User](ctx, w.exec, q)
}

func (w *Writer) SetLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("last_login_at").ToArg(at),
		um.SetCol("updated_at").To(sqlconfig.Now()),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}

func (w *Writer) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("password_hash").ToArg(hash),
		um.SetCol("updated_at").To(sqlconfig.Now()),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}
