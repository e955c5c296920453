package respond

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/service"
)

func status(t *testing.T, err error) int {
	t.Helper()
	var statusErr huma.StatusError
	require.True(t, errors.As(err, &statusErr))
	return statusErr.GetStatus()
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: amount must be greater than zero", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: invalid refresh token", service.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("lookup: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: duplicate", service.ErrConflict), http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
		{huma.Error422UnprocessableEntity("already mapped"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, status(t, Error(tt.err, "failed")), tt.err.Error())
	}
}

func TestError_ValidationMessage(t *testing.T) {
	err := Error(fmt.Errorf("%w: amount must be greater than zero", service.ErrValidation), "failed")

	var model *huma.ErrorModel
	require.True(t, errors.As(err, &model))
	assert.Equal(t, "amount must be greater than zero", model.Detail)
}

func TestUserID(t *testing.T) {
	_, err := UserID(context.Background())
	assert.Equal(t, http.StatusUnauthorized, status(t, err))

	id := uuid.Must(uuid.NewV4())
	got, err := UserID(auth.WithUserID(context.Background(), id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("to", "2025-01-31", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 999999999, time.UTC), *got)

	got, err = ParseTime("from", "2025-01-31T08:00:00Z", false)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	got, err = ParseTime("from", "", false)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseTime("from", "31/01/2025", false)
	assert.Equal(t, http.StatusBadRequest, status(t, err))
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("amount", " 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = ParseDecimal("amount", "twelve")
	assert.Equal(t, http.StatusBadRequest, status(t, err))
}
