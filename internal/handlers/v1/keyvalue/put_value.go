package keyvalue

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
)

// PutValueInput accepts the value and lifetime in the JSON body or, when
// there is no body, in the query string.
type PutValueInput struct {
	Key        string `path:"key" minLength:"1" maxLength:"200" doc:"Cache key"`
	Value      string `query:"value" doc:"Value, used when the body has none"`
	TTLSeconds int    `query:"ttlSeconds" minimum:"0" doc:"Lifetime in seconds, used when the body has none"`
	Body       *PutValueBody
}

type PutValueBody struct {
	Value      *string `json:"value,omitempty"`
	TTLSeconds *int    `json:"ttlSeconds,omitempty" minimum:"0" doc:"Lifetime in seconds; 0 or absent stores without expiry"`
}

type PutValueOutput struct {
	Body struct {
		Key              string `json:"key"`
		Set              bool   `json:"set"`
		ExpiresInSeconds int    `json:"expiresInSeconds"`
	}
}

// PutValueHandler handles PUT /cache/{key}.
type PutValueHandler struct {
	Store Store
}

func NewPutValueHandler(store Store) *PutValueHandler {
	return &PutValueHandler{Store: store}
}

func (h *PutValueHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "put-cache-value",
		Method:      http.MethodPut,
		Path:        "/cache/{key}",
		Summary:     "Store a value",
		Tags:        []string{"Cache"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parsePutValueInput(input *PutValueInput) (value string, ttlSeconds int, err error) {
	value, ttlSeconds = input.Value, input.TTLSeconds
	if input.Body != nil {
		if input.Body.Value != nil {
			value = *input.Body.Value
		}
		if input.Body.TTLSeconds != nil {
			ttlSeconds = *input.Body.TTLSeconds
		}
	}
	if strings.TrimSpace(value) == "" {
		return "", 0, huma.Error400BadRequest("value required")
	}
	return value, ttlSeconds, nil
}

func (h *PutValueHandler) handle(ctx context.Context, input *PutValueInput) (*PutValueOutput, error) {
	if err := checkAvailable(h.Store); err != nil {
		return nil, err
	}
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	value, ttlSeconds, err := parsePutValueInput(input)
	if err != nil {
		return nil, err
	}

	ttl := cache.NoExpiry
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	if err = h.Store.Set(ctx, storeKey(userID, input.Key), value, ttl); err != nil {
		return nil, huma.Error500InternalServerError("failed to write cache", err)
	}

	out := &PutValueOutput{}
	out.Body.Key = input.Key
	out.Body.Set = true
	out.Body.ExpiresInSeconds = ttlSeconds
	return out, nil
}
