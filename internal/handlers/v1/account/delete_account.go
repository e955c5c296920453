package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
)

type DeleteAccountOutput struct {
	Status int
}

type accountDeleter interface {
	DeleteAccount(ctx context.Context, userID, id uuid.UUID) error
}

// DeleteAccountHandler handles DELETE /api/accounts/{id}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/api/accounts/{id}",
		Summary:       "Delete an account",
		Tags:          []string{"Accounts"},
		Security:      auth.BearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*DeleteAccountOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err = h.AccountService.DeleteAccount(ctx, userID, id); err != nil {
		return nil, respond.Error(err, "failed to delete account")
	}
	return &DeleteAccountOutput{Status: http.StatusNoContent}, nil
}
