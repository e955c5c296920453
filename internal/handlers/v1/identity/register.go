package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
)

type RegisterInput struct {
	ClientIP
	Body struct {
		Email     string `json:"email" format:"email" maxLength:"254"`
		Password  string `json:"password" minLength:"8" maxLength:"128"`
		FirstName string `json:"firstName" minLength:"1" maxLength:"100"`
		LastName  string `json:"lastName" minLength:"1" maxLength:"100"`
	}
}

type registerer interface {
	Register(ctx context.Context, req service.RegisterRequest, ip string) (*service.AuthResult, error)
}

// RegisterHandler handles POST /api/auth/register.
type RegisterHandler struct {
	AuthService registerer
}

func NewRegisterHandler(svc registerer) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/auth/register",
		Summary:     "Register a user",
		Description: "Creates a user with the User role and signs them in.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	logData := logging.GetLogData(ctx)
	var result *service.AuthResult
	err := logging.TimeCall(logData, "registerMs", func() error {
		var callErr error
		result, callErr = h.AuthService.Register(ctx, service.RegisterRequest{
			Email:     input.Body.Email,
			Password:  input.Body.Password,
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
		}, input.ip)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "registration failed")
	}
	if logData != nil {
		logData.AddData("userID", result.User.ID.String())
	}
	return authFromService(result), nil
}
