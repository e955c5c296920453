// Package respondtest builds humatest APIs whose requests arrive already
// authenticated.
package respondtest

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
)

// New returns a test API that attaches userID to every request. Pass
// uuid.Nil for an anonymous caller.
func New(t *testing.T, userID uuid.UUID) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	if userID != uuid.Nil {
		api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), userID)))
		})
	}
	return api
}
