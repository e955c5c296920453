package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

type MeOutput struct {
	Body UserInfo
}

type profileReader interface {
	Me(ctx context.Context, userID uuid.UUID) (*service.UserInfo, error)
}

// MeHandler handles GET /api/auth/me.
type MeHandler struct {
	AuthService profileReader
}

func NewMeHandler(svc profileReader) *MeHandler {
	return &MeHandler{AuthService: svc}
}

func (h *MeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/api/auth/me",
		Summary:     "Get the caller's profile",
		Tags:        []string{"Auth"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *MeHandler) handle(ctx context.Context, _ *struct{}) (*MeOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	info, err := h.AuthService.Me(ctx, userID)
	if err != nil {
		return nil, respond.Error(err, "failed to load profile")
	}
	return &MeOutput{Body: userFromService(*info)}, nil
}
