package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type RefreshInput struct {
	ClientIP
	Body struct {
		AccessToken  string `json:"accessToken" minLength:"1" doc:"The last access token, expired or not"`
		RefreshToken string `json:"refreshToken" minLength:"1"`
	}
}

type refresher interface {
	Refresh(ctx context.Context, req service.RefreshRequest, ip string) (*service.AuthResult, error)
}

// RefreshHandler handles POST /api/auth/refresh.
type RefreshHandler struct {
	AuthService refresher
}

func NewRefreshHandler(svc refresher) *RefreshHandler {
	return &RefreshHandler{AuthService: svc}
}

func (h *RefreshHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/api/auth/refresh",
		Summary:     "Exchange a refresh token for new tokens",
		Description: "The refresh token is single use: it is revoked and replaced by the one returned.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RefreshHandler) handle(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	result, err := h.AuthService.Refresh(ctx, service.RefreshRequest{
		AccessToken:  input.Body.AccessToken,
		RefreshToken: input.Body.RefreshToken,
	}, input.ip)
	if err != nil {
		return nil, respond.Error(err, "token refresh failed")
	}
	return authFromService(result), nil
}
