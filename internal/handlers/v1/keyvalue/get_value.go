package keyvalue

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
)

type GetValueOutput struct {
	Body struct {
		Key        string   `json:"key"`
		Value      string   `json:"value"`
		TTLSeconds *float64 `json:"ttlSeconds,omitempty" doc:"Remaining lifetime, absent when the key never expires"`
	}
}

// GetValueHandler handles GET /cache/{key}.
type GetValueHandler struct {
	Store Store
}

func NewGetValueHandler(store Store) *GetValueHandler {
	return &GetValueHandler{Store: store}
}

func (h *GetValueHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cache-value",
		Method:      http.MethodGet,
		Path:        "/cache/{key}",
		Summary:     "Read a cached value",
		Tags:        []string{"Cache"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *GetValueHandler) handle(ctx context.Context, input *KeyInput) (*GetValueOutput, error) {
	if err := checkAvailable(h.Store); err != nil {
		return nil, err
	}
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	key := storeKey(userID, input.Key)

	var value string
	found, err := h.Store.Get(ctx, key, &value)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read cache", err)
	}
	if !found {
		return nil, huma.Error404NotFound("key not found")
	}

	out := &GetValueOutput{}
	out.Body.Key = input.Key
	out.Body.Value = value

	ttl, found, err := h.Store.TTL(ctx, key)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read cache", err)
	}
	if found && ttl != cache.NoExpiry {
		seconds := ttl.Seconds()
		out.Body.TTLSeconds = &seconds
	}
	return out, nil
}
