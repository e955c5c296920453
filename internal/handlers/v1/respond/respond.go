// Package respond holds the pieces every v1 handler shares: turning service
// errors into HTTP problems and reading the caller from the context.
package respond

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/service"
)

// Error maps a service error to its HTTP status. Anything unrecognised is a
// 500 carrying fallback as its message.
func Error(err error, fallback string) error {
	var statusErr huma.StatusError
	switch {
	case errors.As(err, &statusErr):
		return err
	case errors.Is(err, service.ErrValidation):
		return huma.Error400BadRequest(strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": "))
	case errors.Is(err, service.ErrUnauthorized):
		return huma.Error401Unauthorized(strings.TrimPrefix(err.Error(), service.ErrUnauthorized.Error()+": "))
	case errors.Is(err, service.ErrNotFound):
		return huma.Error404NotFound("resource not found")
	case errors.Is(err, service.ErrConflict):
		return huma.Error409Conflict(strings.TrimPrefix(err.Error(), service.ErrConflict.Error()+": "))
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}

// UserID returns the authenticated caller.
func UserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.Error401Unauthorized("authentication required")
	}
	return userID, nil
}

// ParseID parses a path or body UUID.
func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("invalid " + field)
	}
	return id, nil
}

// ParseOptionalID parses a UUID that may be omitted.
func ParseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDecimal parses a decimal amount sent as a string.
func ParseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, huma.Error400BadRequest("invalid " + field)
	}
	return d, nil
}

// ParseTime accepts RFC 3339 timestamps and plain dates. A plain date used
// as an upper bound (endOfDay) covers the whole day.
func ParseTime(field, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid " + field + ": use YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// FormatTime renders t as RFC 3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatOptionalTime renders t, or nil when t is nil.
func FormatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
