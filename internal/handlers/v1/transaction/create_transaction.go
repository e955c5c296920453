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
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionBody is the request body fields for creating a transaction.
type CreateTransactionBody struct {
	AccountID   string  `json:"accountId" format:"uuid" doc:"Account UUID"`
	Type        string  `json:"type" enum:"Income,Expense,TransferIn,TransferOut,Payment,Withdrawal,Deposit" doc:"Transaction type"`
	Amount      string  `json:"amount" doc:"Positive decimal amount (e.g. '42.50')"`
	Description string  `json:"description,omitempty" maxLength:"200" doc:"Description"`
	Category    *string `json:"category,omitempty" maxLength:"60" doc:"Optional category"`
	Timestamp   string  `json:"timestamp,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateTransactionOutput is the response for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, create service.TransactionCreate) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/api/transactions",
		Summary:     "Create a transaction",
		Description: "Records a transaction against one of the caller's accounts and updates its balance.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input into a
// service create request.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	accountID, err := respond.ParseID("accountId", input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, err
	}

	txType, ok := transaction.ParseType(input.Body.Type)
	if !ok {
		return service.TransactionCreate{}, huma.Error400BadRequest("invalid type")
	}

	amount, err := respond.ParseDecimal("amount", input.Body.Amount)
	if err != nil {
		return service.TransactionCreate{}, err
	}

	var timestamp *time.Time
	if input.Body.Timestamp != "" {
		parsed, parseErr := time.Parse(time.RFC3339, input.Body.Timestamp)
		if parseErr != nil {
			return service.TransactionCreate{}, huma.Error400BadRequest("invalid timestamp", parseErr)
		}
		timestamp = &parsed
	}

	return service.TransactionCreate{
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: input.Body.Description,
		Category:    input.Body.Category,
		Timestamp:   timestamp,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var created *service.Transaction
	err = logging.TimeCall(logData, "createTransactionMs", func() error {
		var callErr error
		created, callErr = h.TransactionService.CreateTransaction(ctx, userID, create)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   fromService(*created),
	}, nil
}
