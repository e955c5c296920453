package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
)

type DeleteTransactionOutput struct {
	Status int
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /api/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/api/transactions/{id}",
		Summary:       "Delete a transaction",
		Description:   "Removes a transaction and reverses its effect on the account balance.",
		Tags:          []string{"Transactions"},
		Security:      auth.BearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*DeleteTransactionOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	err = logging.TimeCall(logging.GetLogData(ctx), "deleteTransactionMs", func() error {
		return h.TransactionService.DeleteTransaction(ctx, userID, id)
	})
	if err != nil {
		return nil, respond.Error(err, "failed to delete transaction")
	}
	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
