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

type PayBillInput struct {
	ID   string `path:"id" format:"uuid" doc:"Bill UUID"`
	Body PayBillBody
}

type PayBillBody struct {
	Amount    string  `json:"amount" doc:"Positive decimal amount paid"`
	PaidAt    *string `json:"paidAt,omitempty" doc:"Payment time, YYYY-MM-DD or RFC3339; defaults to now"`
	Notes     *string `json:"notes,omitempty" maxLength:"240"`
	AccountID *string `json:"accountId,omitempty" format:"uuid" doc:"Account to post a Payment transaction against"`
}

// PaymentResult reports the recorded payment, the bill after it was applied
// and the transaction posted for it, if any.
type PaymentResult struct {
	Payment     Payment `json:"payment"`
	Bill        Bill    `json:"bill"`
	Transaction *string `json:"transactionId,omitempty" doc:"UUID of the posted transaction"`
}

type PayBillOutput struct {
	Body PaymentResult
}

type billPayer interface {
	PayBill(ctx context.Context, userID, id uuid.UUID, pay service.BillPay) (*service.BillPaymentResult, error)
}

// PayBillHandler handles POST /api/billing/bills/{id}/pay.
type PayBillHandler struct {
	BillService billPayer
}

func NewPayBillHandler(svc billPayer) *PayBillHandler {
	return &PayBillHandler{BillService: svc}
}

func (h *PayBillHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "pay-bill",
		Method:      http.MethodPost,
		Path:        "/api/billing/bills/{id}/pay",
		Summary:     "Pay a bill",
		Description: "Records a payment. Recurring bills move to their next due date; one-off bills are closed.",
		Tags:        []string{"Billing"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parsePayBillInput(body PayBillBody) (service.BillPay, error) {
	amount, err := respond.ParseDecimal("amount", body.Amount)
	if err != nil {
		return service.BillPay{}, err
	}
	pay := service.BillPay{Amount: amount, Notes: body.Notes}
	if body.PaidAt != nil {
		if pay.PaidAt, err = respond.ParseTime("paidAt", *body.PaidAt, false); err != nil {
			return service.BillPay{}, err
		}
	}
	if body.AccountID != nil {
		if pay.AccountID, err = respond.ParseOptionalID("accountId", *body.AccountID); err != nil {
			return service.BillPay{}, err
		}
	}
	return pay, nil
}

func (h *PayBillHandler) handle(ctx context.Context, input *PayBillInput) (*PayBillOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := respond.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}
	pay, err := parsePayBillInput(input.Body)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var result *service.BillPaymentResult
	err = logging.TimeCall(logData, "payBillMs", func() error {
		var callErr error
		result, callErr = h.BillService.PayBill(ctx, userID, id, pay)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to pay bill")
	}

	body := PaymentResult{
		Payment: paymentFromService(result.Payment),
		Bill:    fromService(result.Bill),
	}
	if result.Transaction != nil {
		txID := result.Transaction.ID.String()
		body.Transaction = &txID
		if logData != nil {
			logData.AddData("transactionID", txID)
		}
	}
	return &PayBillOutput{Body: body}, nil
}
