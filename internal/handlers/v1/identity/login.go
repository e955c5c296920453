package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
)

type LoginInput struct {
	ClientIP
	Body struct {
		Email    string `json:"email" maxLength:"254"`
		Password string `json:"password" maxLength:"128"`
	}
}

type loginer interface {
	Login(ctx context.Context, req service.LoginRequest, ip string) (*service.AuthResult, error)
}

// LoginHandler handles POST /api/auth/login.
type LoginHandler struct {
	AuthService loginer
}

func NewLoginHandler(svc loginer) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Sign in with email and password",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	logData := logging.GetLogData(ctx)
	var result *service.AuthResult
	err := logging.TimeCall(logData, "loginMs", func() error {
		var callErr error
		result, callErr = h.AuthService.Login(ctx, service.LoginRequest{
			Email:    input.Body.Email,
			Password: input.Body.Password,
		}, input.ip)
		return callErr
	})
	if err != nil {
		return nil, respond.Error(err, "login failed")
	}
	if logData != nil {
		logData.AddData("userID", result.User.ID.String())
	}
	return authFromService(result), nil
}
