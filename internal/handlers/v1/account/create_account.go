package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
	"github.com/carson-networks/budgetforge/internal/storage/account"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name           string `json:"name" minLength:"1" maxLength:"100" doc:"Account name"`
	Type           int    `json:"type" minimum:"0" maximum:"4" doc:"Account type: 0=Checking, 1=Savings, 2=Credit, 3=Investment, 4=Cash"`
	Currency       string `json:"currency,omitempty" doc:"3-letter currency code, defaults to CAD"`
	InitialBalance string `json:"initialBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, create service.AccountCreate) (*service.Account, error)
}

// CreateAccountHandler handles POST /api/accounts.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/api/accounts",
		Summary:     "Create an account",
		Description: "Opens an account for the caller with a name, type, currency and starting balance.",
		Tags:        []string{"Accounts"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.AccountCreate, error) {
	balance := decimal.Zero
	if input.Body.InitialBalance != "" {
		var err error
		balance, err = respond.ParseDecimal("initialBalance", input.Body.InitialBalance)
		if err != nil {
			return service.AccountCreate{}, err
		}
	}

	return service.AccountCreate{
		Name:           input.Body.Name,
		Type:           account.Type(input.Body.Type),
		Currency:       input.Body.Currency,
		InitialBalance: balance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var created *service.Account
	err = logging.TimeCall(logData, "createAccountMs", func() error {
		var callErr error
		created, callErr = h.AccountService.CreateAccount(ctx, userID, create)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", created.ID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   fromService(*created),
	}, nil
}
