package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budgetforge/internal/config"
	"github.com/carson-networks/budgetforge/internal/storage/sqlconfig"
)

// Readers and writers return ErrNotFound when no row matches and ErrConflict
// when a write breaks a unique constraint.
var (
	ErrNotFound = sqlconfig.ErrNotFound
	ErrConflict = sqlconfig.ErrConflict
)

type Storage struct {
	DB *sql.DB
	db bob.DB
}

// Open connects to PostgreSQL with the configured credentials.
func Open(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return New(db), nil
}

func New(db *sql.DB) *Storage {
	return &Storage{
		DB: db,
		db: bob.NewDB(db),
	}
}

// Read returns readers that run on the connection pool.
func (s *Storage) Read() *Reader {
	return NewReader(s.db)
}

// Write begins a transaction. The caller must Commit or Rollback the writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
