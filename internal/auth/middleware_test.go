package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func newProtectedAPI(t *testing.T, tokens *TokenService) humatest.TestAPI {
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, tokens))

	handler := func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		out := &whoAmIOutput{}
		if userID, ok := UserIDFromContext(ctx); ok {
			out.Body.UserID = userID.String()
		}
		return out, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Security:    BearerSecurity,
	}, handler)
	huma.Register(api, huma.Operation{
		OperationID: "public",
		Method:      http.MethodGet,
		Path:        "/public",
	}, handler)

	return api
}

func TestMiddleware(t *testing.T) {
	tokens := newTestTokenService(time.Now())
	api := newProtectedAPI(t, tokens)
	userID := uuid.Must(uuid.NewV4())

	issued, err := tokens.IssueAccessToken(userID, "ada@example.com", []string{"User"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		resp := api.Get("/whoami", "Authorization: Bearer "+issued.Value)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), userID.String())
	})

	t.Run("missing token", func(t *testing.T) {
		resp := api.Get("/whoami")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := api.Get("/whoami", "Authorization: Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		resp := api.Get("/whoami", "Authorization: Basic "+issued.Value)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("public operation skips auth", func(t *testing.T) {
		resp := api.Get("/public")
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromContext(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.Must(uuid.NewV4())
	got, ok := UserIDFromContext(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
