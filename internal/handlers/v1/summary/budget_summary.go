// Package summary serves the monthly budget summary.
package summary

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

type BudgetSummaryInput struct {
	From      string `query:"from" required:"true" doc:"Start of the range, YYYY-MM-DD or RFC3339"`
	To        string `query:"to" required:"true" doc:"End of the range, YYYY-MM-DD or RFC3339"`
	AccountID string `query:"accountId" doc:"Only transactions of this account"`
}

type MonthlyTotal struct {
	Year    int    `json:"year"`
	Month   int    `json:"month" minimum:"1" maximum:"12"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type BudgetSummaryBody struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	TotalIncome   string          `json:"totalIncome"`
	TotalExpenses string          `json:"totalExpenses"`
	Net           string          `json:"net"`
	Monthly       []MonthlyTotal  `json:"monthly"`
	TopCategories []CategoryTotal `json:"topCategories" doc:"Five largest expense categories"`
}

type BudgetSummaryOutput struct {
	Body BudgetSummaryBody
}

type summarizer interface {
	GetSummary(ctx context.Context, userID uuid.UUID, from, to time.Time, accountID *uuid.UUID) (*service.BudgetSummary, error)
}

// BudgetSummaryHandler handles GET /api/budget-summary.
type BudgetSummaryHandler struct {
	SummaryService summarizer
}

func NewBudgetSummaryHandler(svc summarizer) *BudgetSummaryHandler {
	return &BudgetSummaryHandler{SummaryService: svc}
}

func (h *BudgetSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-summary",
		Method:      http.MethodGet,
		Path:        "/api/budget-summary",
		Summary:     "Summarize income and spending",
		Description: "Monthly income and expense totals plus the top expense categories for the range.",
		Tags:        []string{"Summary"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parseBudgetSummaryInput(input *BudgetSummaryInput) (from, to time.Time, accountID *uuid.UUID, err error) {
	fromPtr, err := respond.ParseTime("from", input.From, false)
	if err != nil {
		return from, to, nil, err
	}
	toPtr, err := respond.ParseTime("to", input.To, true)
	if err != nil {
		return from, to, nil, err
	}
	if fromPtr == nil || toPtr == nil || fromPtr.After(*toPtr) {
		return from, to, nil, huma.Error400BadRequest("provide valid from/to query params")
	}
	accountID, err = respond.ParseOptionalID("accountId", input.AccountID)
	if err != nil {
		return from, to, nil, err
	}
	return *fromPtr, *toPtr, accountID, nil
}

func (h *BudgetSummaryHandler) handle(ctx context.Context, input *BudgetSummaryInput) (*BudgetSummaryOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	from, to, accountID, err := parseBudgetSummaryInput(input)
	if err != nil {
		return nil, err
	}

	var summary *service.BudgetSummary
	err = logging.TimeCall(logging.GetLogData(ctx), "budgetSummaryMs", func() error {
		var callErr error
		summary, callErr = h.SummaryService.GetSummary(ctx, userID, from, to, accountID)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to build budget summary")
	}

	body := BudgetSummaryBody{
		From:          respond.FormatTime(summary.From),
		To:            respond.FormatTime(summary.To),
		TotalIncome:   summary.TotalIncome.String(),
		TotalExpenses: summary.TotalExpenses.String(),
		Net:           summary.Net.String(),
		Monthly:       make([]MonthlyTotal, len(summary.Monthly)),
		TopCategories: make([]CategoryTotal, len(summary.TopCategories)),
	}
	for i, m := range summary.Monthly {
		body.Monthly[i] = MonthlyTotal{
			Year:    m.Year,
			Month:   int(m.Month),
			Income:  m.Income.String(),
			Expense: m.Expense.String(),
		}
	}
	for i, c := range summary.TopCategories {
		body.TopCategories[i] = CategoryTotal{Category: c.Category, Amount: c.Amount.String()}
	}
	return &BudgetSummaryOutput{Body: body}, nil
}
