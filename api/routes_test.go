package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/service"
	"github.com/carson-networks/budgetforge/internal/storage"
)

func newTestRest(t *testing.T) (*Rest, *auth.TokenService, *test.Hook) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger, hook := test.NewNullLogger()
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret:          strings.Repeat("s", 32),
		Issuer:          "budgetforge",
		Audience:        "budgetforge-clients",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	svc := service.NewService(service.Dependencies{
		Reader: storage.New(db).Read(),
		Tokens: tokens,
		Hasher: auth.NewPasswordHasher(auth.DefaultArgon2Params),
		Log:    logger,
	})

	return &Rest{
		Logger:  logger,
		Port:    "0",
		Service: svc,
		Tokens:  tokens,
		Cache:   cache.NoopCache{},
	}, tokens, hook
}

func do(t *testing.T, h http.Handler, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	rest, _, _ := newTestRest(t)
	router := rest.Router()

	for _, path := range []string{"/api/accounts", "/api/transactions", "/api/billing/upcoming", "/api/auth/me", "/cache/theme"} {
		rec := do(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_TokenReachesHandler(t *testing.T) {
	rest, tokens, _ := newTestRest(t)
	router := rest.Router()
	issued, err := tokens.IssueAccessToken(uuid.Must(uuid.NewV4()), "ada@example.com", []string{"User"})
	require.NoError(t, err)

	rec := do(t, router, http.MethodGet, "/cache/theme", issued.Value, nil)

	// Past auth the handler answers: the test server runs without Redis.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "cache is not configured")
}

func TestRouter_LogsEachRequest(t *testing.T) {
	rest, _, hook := newTestRest(t)

	do(t, rest.Router(), http.MethodGet, "/api/accounts", "", nil)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Handler.GET /api/accounts.Complete", entry.Message)
	assert.Equal(t, http.StatusUnauthorized, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["requestID"])
}

func TestRouter_OpenAPIDeclaresBearerScheme(t *testing.T) {
	rest, _, _ := newTestRest(t)

	rec := do(t, rest.Router(), http.MethodGet, "/openapi.json", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bearerFormat":"JWT"`)
	assert.Contains(t, rec.Body.String(), `"/api/billing/bills/{id}/pay"`)
}
