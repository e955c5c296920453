package token

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

func (w *Writer) FindByHashForUpdate(ctx context.Context, hash string) (*RefreshToken, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(sqlconfig.Col("token_hash").EQ(psql.Arg(hash))),
		sm.ForUpdate(),
	)
	return sqlconfig.One[RefreshToken](ctx, w.exec, q)
}

func (w *Writer) Create(ctx context.Context, create *TokenCreate) (*RefreshToken, error) {
	q := psql.Insert(
		im.Into(tableName, "user_id", "token_hash", "expires_at", "created_by_ip"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.TokenHash),
			psql.Arg(create.ExpiresAt),
			psql.Arg(nullable(create.CreatedByIP)),
		),
		im.Returning(columns...),
	)
	return sqlconfig.One[RefreshToken](ctx, w.exec, q)
}

// Revoke marks one active token revoked, optionally recording its successor.
func (w *Writer) Revoke(ctx context.Context, id uuid.UUID, ip string, replacedByHash *string) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("revoked_at").To(sqlconfig.Now()),
		um.SetCol("revoked_by_ip").ToArg(nullable(ip)),
		um.SetCol("replaced_by_hash").ToArg(replacedByHash),
		um.Where(sqlconfig.Col("id").EQ(psql.Arg(id))),
		um.Where(sqlconfig.Col("revoked_at").IsNull()),
	)
	return sqlconfig.ExecOne(ctx, w.exec, q)
}

// RevokeAllForUser revokes every token of the user that is still live.
func (w *Writer) RevokeAllForUser(ctx context.Context, userID uuid.UUID, ip string) (int64, error) {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("revoked_at").To(sqlconfig.Now()),
		um.SetCol("revoked_by_ip").ToArg(nullable(ip)),
		um.Where(sqlconfig.Col("user_id").EQ(psql.Arg(userID))),
		um.Where(sqlconfig.Col("revoked_at").IsNull()),
		um.Where(sqlconfig.Col("expires_at").GT(sqlconfig.Now())),
	)
	return sqlconfig.Exec(ctx, w.exec, q)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
