package auth

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/logging"
)

// SecurityScheme is the name operations use to require a bearer token.
const SecurityScheme = "bearer"

// BearerSecurity is the Security value for protected operations.
var BearerSecurity = []map[string][]string{{SecurityScheme: {}}}

type AccessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// Middleware rejects requests to bearer-protected operations that lack a
// valid access token, and puts the caller's user id on the context.
func Middleware(api huma.API, validator AccessTokenValidator) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := validator.ValidateAccessToken(strings.TrimSpace(tokenString))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("userID", userID.String())
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}
