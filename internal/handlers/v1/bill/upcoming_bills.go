package bill

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

type UpcomingBillsInput struct {
	Days           int  `query:"days" doc:"Window in days, clamped to 1..90; 0 or less means 30"`
	IncludeOverdue bool `query:"includeOverdue" doc:"Also return active bills already past due"`
}

type UpcomingBillsOutput struct {
	Body []UpcomingBill
}

type upcomingLister interface {
	Upcoming(ctx context.Context, userID uuid.UUID, query service.UpcomingQuery) ([]service.UpcomingBill, error)
}

// UpcomingBillsHandler handles GET /api/billing/upcoming.
type UpcomingBillsHandler struct {
	BillService upcomingLister
}

func NewUpcomingBillsHandler(svc upcomingLister) *UpcomingBillsHandler {
	return &UpcomingBillsHandler{BillService: svc}
}

func (h *UpcomingBillsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upcoming-bills",
		Method:      http.MethodGet,
		Path:        "/api/billing/upcoming",
		Summary:     "List upcoming bills",
		Description: "Returns active bills coming due in the window, soonest first.",
		Tags:        []string{"Billing"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *UpcomingBillsHandler) handle(ctx context.Context, input *UpcomingBillsInput) (*UpcomingBillsOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var bills []service.UpcomingBill
	err = logging.TimeCall(logData, "upcomingBillsMs", func() error {
		var callErr error
		bills, callErr = h.BillService.Upcoming(ctx, userID, service.UpcomingQuery{
			Days:           input.Days,
			IncludeOverdue: input.IncludeOverdue,
		})
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list upcoming bills")
	}
	if logData != nil {
		logData.AddData("billCount", len(bills))
	}

	out := make([]UpcomingBill, len(bills))
	for i, b := range bills {
		out[i] = UpcomingBill{
			Bill:         fromService(b.Bill),
			DaysUntilDue: b.DaysUntilDue,
			Status:       b.Status.String(),
		}
	}
	return &UpcomingBillsOutput{Body: out}, nil
}
