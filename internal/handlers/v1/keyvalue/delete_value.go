package keyvalue

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
)

type DeleteValueOutput struct {
	Body struct {
		Key     string `json:"key"`
		Removed bool   `json:"removed"`
	}
}

// DeleteValueHandler handles DELETE /cache/{key}.
type DeleteValueHandler struct {
	Store Store
}

func NewDeleteValueHandler(store Store) *DeleteValueHandler {
	return &DeleteValueHandler{Store: store}
}

func (h *DeleteValueHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-cache-value",
		Method:      http.MethodDelete,
		Path:        "/cache/{key}",
		Summary:     "Remove a value",
		Tags:        []string{"Cache"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *DeleteValueHandler) handle(ctx context.Context, input *KeyInput) (*DeleteValueOutput, error) {
	if err := checkAvailable(h.Store); err != nil {
		return nil, err
	}
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	removed, err := h.Store.Remove(ctx, storeKey(userID, input.Key))
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to remove from cache", err)
	}

	out := &DeleteValueOutput{}
	out.Body.Key = input.Key
	out.Body.Removed = removed
	return out, nil
}
