package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
	"github.com/carson-networks/budgetforge/internal/storage/account"
)

type UpdateAccountInput struct {
	ID   string `path:"id" format:"uuid" doc:"Account UUID"`
	Body UpdateAccountBody
}

// UpdateAccountBody carries the fields to change. The balance is not editable.
type UpdateAccountBody struct {
	Name     *string `json:"name,omitempty" maxLength:"100" doc:"New account name"`
	Type     *int    `json:"type,omitempty" minimum:"0" maximum:"4" doc:"New account type"`
	Currency *string `json:"currency,omitempty" doc:"New 3-letter currency code"`
}

type accountUpdater interface {
	UpdateAccount(ctx context.Context, userID, id uuid.UUID, update service.AccountUpdate) (*service.Account, error)
}

// UpdateAccountHandler handles PUT /api/accounts/{id}.
type UpdateAccountHandler struct {
	AccountService accountUpdater
}

func NewUpdateAccountHandler(svc accountUpdater) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/api/accounts/{id}",
		Summary:     "Update an account",
		Description: "Changes the name, type or currency of an account. Fields left out are unchanged.",
		Tags:        []string{"Accounts"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	update := service.AccountUpdate{
		Name:     input.Body.Name,
		Currency: input.Body.Currency,
	}
	if input.Body.Type != nil {
		t := account.Type(*input.Body.Type)
		update.Type = &t
	}

	var updated *service.Account
	err = logging.TimeCall(logging.GetLogData(ctx), "updateAccountMs", func() error {
		var callErr error
		updated, callErr = h.AccountService.UpdateAccount(ctx, userID, id, update)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to update account")
	}
	return &AccountOutput{Body: fromService(*updated)}, nil
}
