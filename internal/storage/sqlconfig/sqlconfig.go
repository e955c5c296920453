// Package sqlconfig holds the SQL plumbing shared by the per-table storage
// packages: query execution helpers and error translation.
package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/scan"
)

var (
	// ErrNotFound is returned when a lookup or a targeted mutation matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write hits a unique constraint.
	ErrConflict = errors.New("conflict")
)

const uniqueViolation = pq.ErrorCode("23505")

// translate turns driver errors callers act on into package sentinels.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}
	return err
}

// One runs q and maps the single resulting row onto T using its db tags.
func One[T any](ctx context.Context, exec bob.Executor, q bob.Query) (*T, error) {
	row, err := bob.One(ctx, exec, q, scan.StructMapper[T]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// All runs q and maps every resulting row onto T.
func All[T any](ctx context.Context, exec bob.Executor, q bob.Query) ([]*T, error) {
	rows, err := bob.All(ctx, exec, q, scan.StructMapper[T]())
	if err != nil {
		return nil, translate(err)
	}
	result := make([]*T, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// ExecOne runs a mutation that must touch exactly one row.
func ExecOne(ctx context.Context, exec bob.Executor, q bob.Query) error {
	affected, err := Exec(ctx, exec, q)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exec runs a mutation and returns the number of affected rows.
func Exec(ctx context.Context, exec bob.Executor, q bob.Query) (int64, error) {
	res, err := bob.Exec(ctx, exec, q)
	if err != nil {
		return 0, translate(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Col quotes a column name.
func Col(name string) dialect.Expression {
	return psql.Quote(name)
}

// Now is the database clock, used for updated_at style columns.
func Now() dialect.Expression {
	return psql.Raw("now()")
}
