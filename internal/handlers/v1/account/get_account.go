package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type AccountIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

type AccountOutput struct {
	Body Account
}

type accountGetter interface {
	GetAccount(ctx context.Context, userID, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /api/accounts/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/api/accounts/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*AccountOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	a, err := h.AccountService.GetAccount(ctx, userID, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get account")
	}
	return &AccountOutput{Body: fromService(*a)}, nil
}
