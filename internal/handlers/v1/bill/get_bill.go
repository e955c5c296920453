package bill

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type BillIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Bill UUID"`
}

type BillDetails struct {
	Bill
	DaysUntilDue int       `json:"daysUntilDue"`
	Status       string    `json:"status" enum:"Pending,DueSoon,Overdue"`
	Payments     []Payment `json:"payments" doc:"Payment history, newest first"`
}

type GetBillOutput struct {
	Body BillDetails
}

type billGetter interface {
	GetBill(ctx context.Context, userID, id uuid.UUID) (*service.BillDetails, error)
}

// GetBillHandler handles GET /api/billing/bills/{id}.
type GetBillHandler struct {
	BillService billGetter
}

func NewGetBillHandler(svc billGetter) *GetBillHandler {
	return &GetBillHandler{BillService: svc}
}

func (h *GetBillHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-bill",
		Method:      http.MethodGet,
		Path:        "/api/billing/bills/{id}",
		Summary:     "Get a bill with its payments",
		Tags:        []string{"Billing"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *GetBillHandler) handle(ctx context.Context, input *BillIDInput) (*GetBillOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	details, err := h.BillService.GetBill(ctx, userID, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get bill")
	}

	body := BillDetails{
		Bill:         fromService(details.Bill),
		DaysUntilDue: details.DaysUntilDue,
		Status:       details.Status.String(),
		Payments:     make([]Payment, len(details.Payments)),
	}
	for i, p := range details.Payments {
		body.Payments[i] = paymentFromService(p)
	}
	return &GetBillOutput{Body: body}, nil
}
