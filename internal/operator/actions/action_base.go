package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/budgetforge/internal/storage"
)

// IAction is one unit of work run inside a single database transaction.
// Returning an error rolls the transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

var (
	ErrNotFound     = storage.ErrNotFound
	ErrConflict     = storage.ErrConflict
	ErrUnauthorized = errors.New("unauthorized")
)
