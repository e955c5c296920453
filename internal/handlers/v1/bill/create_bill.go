package bill

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
)

type CreateBillInput struct {
	Body CreateBillBody
}

type CreateBillBody struct {
	Name        string  `json:"name" minLength:"1" maxLength:"120" doc:"Bill name"`
	Amount      string  `json:"amount" doc:"Positive decimal amount"`
	DueDate     string  `json:"dueDate" doc:"Due date, YYYY-MM-DD or RFC3339"`
	IsRecurring bool    `json:"isRecurring,omitempty"`
	Frequency   *string `json:"frequency,omitempty" enum:"Weekly,BiWeekly,Monthly,Quarterly,Yearly,Custom" doc:"Required when isRecurring is set"`
	Category    *string `json:"category,omitempty" maxLength:"60"`
	AutoPay     bool    `json:"autoPay,omitempty" doc:"Pay automatically on the due date"`
}

type CreateBillOutput struct {
	Status int
	Body   Bill
}

type billCreator interface {
	CreateBill(ctx context.Context, userID uuid.UUID, create service.BillCreate) (*service.Bill, error)
}

// CreateBillHandler handles POST /api/billing/bills.
type CreateBillHandler struct {
	BillService billCreator
}

func NewCreateBillHandler(svc billCreator) *CreateBillHandler {
	return &CreateBillHandler{BillService: svc}
}

func (h *CreateBillHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-bill",
		Method:      http.MethodPost,
		Path:        "/api/billing/bills",
		Summary:     "Create a bill",
		Tags:        []string{"Billing"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parseCreateBillInput(body CreateBillBody) (service.BillCreate, error) {
	amount, err := respond.ParseDecimal("amount", body.Amount)
	if err != nil {
		return service.BillCreate{}, err
	}
	if body.DueDate == "" {
		return service.BillCreate{}, huma.Error400BadRequest("dueDate is required")
	}
	dueDate, err := respond.ParseTime("dueDate", body.DueDate, false)
	if err != nil {
		return service.BillCreate{}, err
	}

	create := service.BillCreate{
		Name:        body.Name,
		Amount:      amount,
		DueDate:     *dueDate,
		IsRecurring: body.IsRecurring,
		Category:    body.Category,
		AutoPay:     body.AutoPay,
	}
	if body.Frequency != nil {
		freq, ok := billing.ParseFrequency(*body.Frequency)
		if !ok {
			return service.BillCreate{}, huma.Error400BadRequest("invalid frequency")
		}
		create.Frequency = &freq
	}
	return create, nil
}

func (h *CreateBillHandler) handle(ctx context.Context, input *CreateBillInput) (*CreateBillOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateBillInput(input.Body)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var created *service.Bill
	err = logging.TimeCall(logData, "createBillMs", func() error {
		var callErr error
		created, callErr = h.BillService.CreateBill(ctx, userID, create)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to create bill")
	}
	if logData != nil {
		logData.AddData("billID", created.ID.String())
	}

	return &CreateBillOutput{Status: http.StatusCreated, Body: fromService(*created)}, nil
}
