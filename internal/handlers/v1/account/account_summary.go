package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type AccountTypeSummary struct {
	Type     int    `json:"type" doc:"Account type"`
	TypeName string `json:"typeName" doc:"Account type name"`
	Count    int    `json:"count" doc:"Number of accounts of this type"`
	Balance  string `json:"balance" doc:"Combined balance of this type"`
}

type AccountSummaryBody struct {
	TotalAccounts int                  `json:"totalAccounts"`
	TotalBalance  string               `json:"totalBalance"`
	ByType        []AccountTypeSummary `json:"byType"`
}

type AccountSummaryOutput struct {
	Body AccountSummaryBody
}

type accountSummarizer interface {
	GetAccountSummary(ctx context.Context, userID uuid.UUID) (*service.AccountSummary, error)
}

// AccountSummaryHandler handles GET /api/accounts/summary.
type AccountSummaryHandler struct {
	AccountService accountSummarizer
}

func NewAccountSummaryHandler(svc accountSummarizer) *AccountSummaryHandler {
	return &AccountSummaryHandler{AccountService: svc}
}

func (h *AccountSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "account-summary",
		Method:      http.MethodGet,
		Path:        "/api/accounts/summary",
		Summary:     "Summarize accounts",
		Description: "Counts the caller's accounts and totals their balances overall and per type.",
		Tags:        []string{"Accounts"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *AccountSummaryHandler) handle(ctx context.Context, _ *struct{}) (*AccountSummaryOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.AccountService.GetAccountSummary(ctx, userID)
	if err != nil {
		return nil, respond.Error(err, "failed to summarize accounts")
	}

	body := AccountSummaryBody{
		TotalAccounts: summary.TotalAccounts,
		TotalBalance:  summary.TotalBalance.String(),
		ByType:        make([]AccountTypeSummary, len(summary.ByType)),
	}
	for i, entry := range summary.ByType {
		body.ByType[i] = AccountTypeSummary{
			Type:     int(entry.Type),
			TypeName: entry.Type.String(),
			Count:    entry.Count,
			Balance:  entry.Balance.String(),
		}
	}
	return &AccountSummaryOutput{Body: body}, nil
}
