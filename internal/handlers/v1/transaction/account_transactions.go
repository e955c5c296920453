package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type AccountTransactionsInput struct {
	AccountID string `path:"accountId" format:"uuid" doc:"Account UUID"`
}

type AccountTransactionsOutput struct {
	Body []Transaction
}

type accountTransactionLister interface {
	ListByAccount(ctx context.Context, userID, accountID uuid.UUID) ([]service.Transaction, error)
}

// AccountTransactionsHandler handles GET /api/transactions/account/{accountId}.
type AccountTransactionsHandler struct {
	TransactionService accountTransactionLister
}

func NewAccountTransactionsHandler(svc accountTransactionLister) *AccountTransactionsHandler {
	return &AccountTransactionsHandler{TransactionService: svc}
}

func (h *AccountTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-account-transactions",
		Method:      http.MethodGet,
		Path:        "/api/transactions/account/{accountId}",
		Summary:     "List an account's transactions",
		Description: "Returns every transaction of the account, newest first. Accounts the caller does not own yield an empty list.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *AccountTransactionsHandler) handle(ctx context.Context, input *AccountTransactionsInput) (*AccountTransactionsOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := respond.ParseID("accountId", input.AccountID)
	if err != nil {
		return nil, err
	}

	txs, err := h.TransactionService.ListByAccount(ctx, userID, accountID)
	if err != nil {
		return nil, respond.Error(err, "failed to list account transactions")
	}
	return &AccountTransactionsOutput{Body: fromServiceList(txs)}, nil
}
