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
)

// ListAccountsInput is the Huma input for listing accounts. Without a cursor
// the first page is returned.
type ListAccountsInput struct {
	Position int `query:"position" minimum:"0" doc:"Offset of the page, taken from nextCursor"`
	Limit    int `query:"limit" minimum:"0" maximum:"100" doc:"Page size, defaults to 20"`
}

// ListAccountsCursor points at the next page.
type ListAccountsCursor struct {
	Position int `json:"position" doc:"Offset of the next page"`
	Limit    int `json:"limit" doc:"Page size used for this cursor"`
}

type ListAccountsResponseBody struct {
	Accounts   []Account           `json:"accounts" doc:"Page of accounts ordered by name"`
	NextCursor *ListAccountsCursor `json:"nextCursor,omitempty" doc:"Cursor for the next page, absent on the last page"`
}

type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

type accountLister interface {
	ListAccounts(ctx context.Context, userID uuid.UUID, cursor *service.AccountCursor) ([]service.Account, *service.AccountCursor, error)
}

// ListAccountsHandler handles GET /api/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/api/accounts",
		Summary:     "List accounts",
		Description: "Returns the caller's accounts ordered by name using offset cursors.",
		Tags:        []string{"Accounts"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parseListAccountsInput(input *ListAccountsInput) *service.AccountCursor {
	if input.Position == 0 && input.Limit == 0 {
		return nil
	}
	limit := input.Limit
	if limit == 0 {
		limit = 20
	}
	return &service.AccountCursor{Position: input.Position, Limit: limit}
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var (
		accounts   []service.Account
		nextCursor *service.AccountCursor
	)
	err = logging.TimeCall(logData, "listAccountsMs", func() error {
		var callErr error
		accounts, nextCursor, callErr = h.AccountService.ListAccounts(ctx, userID, parseListAccountsInput(input))
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list accounts")
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	resp := ListAccountsResponseBody{Accounts: make([]Account, len(accounts))}
	for i, a := range accounts {
		resp.Accounts[i] = fromService(a)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListAccountsCursor{Position: nextCursor.Position, Limit: nextCursor.Limit}
	}

	return &ListAccountsOutput{Body: resp}, nil
}
