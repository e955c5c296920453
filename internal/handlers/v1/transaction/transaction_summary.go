package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type TransactionSummaryInput struct {
	From string `query:"from" doc:"Earliest transaction date, YYYY-MM-DD or RFC3339"`
	To   string `query:"to" doc:"Latest transaction date, YYYY-MM-DD or RFC3339"`
}

type TransactionTypeSummary struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Total string `json:"total"`
}

type TransactionSummaryBody struct {
	Count         int                      `json:"count"`
	TotalIncome   string                   `json:"totalIncome"`
	TotalExpenses string                   `json:"totalExpenses"`
	Net           string                   `json:"net"`
	ByType        []TransactionTypeSummary `json:"byType"`
}

type TransactionSummaryOutput struct {
	Body TransactionSummaryBody
}

type transactionSummarizer interface {
	GetSummary(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*service.TransactionSummary, error)
}

// TransactionSummaryHandler handles GET /api/transactions/summary.
type TransactionSummaryHandler struct {
	TransactionService transactionSummarizer
}

func NewTransactionSummaryHandler(svc transactionSummarizer) *TransactionSummaryHandler {
	return &TransactionSummaryHandler{TransactionService: svc}
}

func (h *TransactionSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/api/transactions/summary",
		Summary:     "Summarize transactions",
		Description: "Totals income and expenses over an optional date range.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *TransactionSummaryHandler) handle(ctx context.Context, input *TransactionSummaryInput) (*TransactionSummaryOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	from, err := respond.ParseTime("from", input.From, false)
	if err != nil {
		return nil, err
	}
	to, err := respond.ParseTime("to", input.To, true)
	if err != nil {
		return nil, err
	}

	summary, err := h.TransactionService.GetSummary(ctx, userID, from, to)
	if err != nil {
		return nil, respond.Error(err, "failed to summarize transactions")
	}

	body := TransactionSummaryBody{
		Count:         summary.Count,
		TotalIncome:   summary.TotalIncome.String(),
		TotalExpenses: summary.TotalExpenses.String(),
		Net:           summary.Net.String(),
		ByType:        make([]TransactionTypeSummary, len(summary.ByType)),
	}
	for i, entry := range summary.ByType {
		body.ByType[i] = TransactionTypeSummary{
			Type:  entry.Type.String(),
			Count: entry.Count,
			Total: entry.Total.String(),
		}
	}
	return &TransactionSummaryOutput{Body: body}, nil
}
