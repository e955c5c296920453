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

type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionBody carries the fields to change; omitted fields keep
// their value.
type UpdateTransactionBody struct {
	Type        *string `json:"type,omitempty" enum:"Income,Expense,TransferIn,TransferOut,Payment,Withdrawal,Deposit" doc:"New type"`
	Amount      *string `json:"amount,omitempty" doc:"New positive amount"`
	Description *string `json:"description,omitempty" maxLength:"200" doc:"New description"`
	Category    *string `json:"category,omitempty" maxLength:"60" doc:"New category"`
	Timestamp   *string `json:"timestamp,omitempty" format:"date-time" doc:"New RFC3339 transaction date"`
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, userID, id uuid.UUID, update service.TransactionUpdate) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /api/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/api/transactions/{id}",
		Summary:     "Update a transaction",
		Description: "Edits a transaction. The account balance is corrected by reversing the old values and applying the new ones.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parseUpdateTransactionInput(body UpdateTransactionBody) (service.TransactionUpdate, error) {
	update := service.TransactionUpdate{
		Description: body.Description,
		Category:    body.Category,
	}

	if body.Type != nil {
		txType, ok := transaction.ParseType(*body.Type)
		if !ok {
			return update, huma.Error400BadRequest("invalid type")
		}
		update.Type = &txType
	}
	if body.Amount != nil {
		amount, err := respond.ParseDecimal("amount", *body.Amount)
		if err != nil {
			return update, err
		}
		update.Amount = &amount
	}
	if body.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339, *body.Timestamp)
		if err != nil {
			return update, huma.Error400BadRequest("invalid timestamp", err)
		}
		update.Timestamp = &ts
	}
	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateTransactionInput(input.Body)
	if err != nil {
		return nil, err
	}

	var updated *service.Transaction
	err = logging.TimeCall(logging.GetLogData(ctx), "updateTransactionMs", func() error {
		var callErr error
		updated, callErr = h.TransactionService.UpdateTransaction(ctx, userID, id, update)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to update transaction")
	}
	return &TransactionOutput{Body: fromService(*updated)}, nil
}
