package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in responses. Its
// fields are sent back as query parameters to fetch the next page.
type ListTransactionsCursor struct {
	Position        int    `json:"position" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	AccountID       string `query:"accountId" doc:"Only transactions of this account"`
	From            string `query:"from" doc:"Earliest transaction date, YYYY-MM-DD or RFC3339"`
	To              string `query:"to" doc:"Latest transaction date, YYYY-MM-DD or RFC3339"`
	Position        int    `query:"position" minimum:"0" doc:"Cursor position from nextCursor"`
	Limit           int    `query:"limit" minimum:"0" maximum:"100" doc:"Cursor page size from nextCursor"`
	MaxCreationTime string `query:"maxCreationTime" doc:"Cursor maxCreationTime from nextCursor"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, query service.TransactionQuery, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles GET /api/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/api/transactions",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions newest first using cursor-based pagination.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// When a cursor is provided, limit and maxCreationTime come from it.
// Without a cursor, the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (query service.TransactionQuery, cursor *service.TransactionCursor, err error) {
	if query.AccountID, err = respond.ParseOptionalID("accountId", input.AccountID); err != nil {
		return query, nil, err
	}
	if query.From, err = respond.ParseTime("from", input.From, false); err != nil {
		return query, nil, err
	}
	if query.To, err = respond.ParseTime("to", input.To, true); err != nil {
		return query, nil, err
	}

	if input.MaxCreationTime == "" {
		return query, nil, nil
	}

	maxCreationTime, parseErr := time.Parse(time.RFC3339, input.MaxCreationTime)
	if parseErr != nil {
		return query, nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", parseErr)
	}
	if input.Limit < 1 {
		return query, nil, huma.NewError(http.StatusBadRequest, "cursor limit must be positive")
	}

	return query, &service.TransactionCursor{
		Position:        input.Position,
		Limit:           input.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	query, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var (
		transactions []service.Transaction
		nextCursor   *service.TransactionCursor
	)
	err = logging.TimeCall(logData, "listTransactionsMs", func() error {
		var callErr error
		transactions, nextCursor, callErr = h.TransactionService.ListTransactions(ctx, userID, query, requestCursor)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: fromServiceList(transactions),
	}
	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339Nano),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
