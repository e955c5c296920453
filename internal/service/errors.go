package service

import (
	"errors"
	"fmt"

	"github.com/carson-networks/budgetforge/internal/operator/actions"
)

var (
	ErrNotFound     = actions.ErrNotFound
	ErrConflict     = actions.ErrConflict
	ErrUnauthorized = actions.ErrUnauthorized
	ErrValidation   = errors.New("validation failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
