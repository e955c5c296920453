package bill

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
)

type DeactivateBillOutput struct {
	Status int
}

type billDeactivator interface {
	DeactivateBill(ctx context.Context, userID, id uuid.UUID) error
}

// DeactivateBillHandler handles DELETE /api/billing/bills/{id}.
type DeactivateBillHandler struct {
	BillService billDeactivator
}

func NewDeactivateBillHandler(svc billDeactivator) *DeactivateBillHandler {
	return &DeactivateBillHandler{BillService: svc}
}

func (h *DeactivateBillHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "deactivate-bill",
		Method:        http.MethodDelete,
		Path:          "/api/billing/bills/{id}",
		Summary:       "Deactivate a bill",
		Description:   "Stops tracking the bill. It stays readable with its payment history.",
		Tags:          []string{"Billing"},
		Security:      auth.BearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeactivateBillHandler) handle(ctx context.Context, input *BillIDInput) (*DeactivateBillOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err = h.BillService.DeactivateBill(ctx, userID, id); err != nil {
		return nil, respond.Error(err, "failed to deactivate bill")
	}
	return &DeactivateBillOutput{Status: http.StatusNoContent}, nil
}
