package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/logging"
)

type LogoutInput struct {
	ClientIP
}

type loggerOuter interface {
	Logout(ctx context.Context, userID uuid.UUID, ip string) (int64, error)
}

// LogoutHandler handles POST /api/auth/logout.
type LogoutHandler struct {
	AuthService loggerOuter
}

func NewLogoutHandler(svc loggerOuter) *LogoutHandler {
	return &LogoutHandler{AuthService: svc}
}

func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/auth/logout",
		Summary:     "Sign out",
		Description: "Revokes every refresh token of the caller. Access tokens stay valid until they expire.",
		Tags:        []string{"Auth"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *LogoutHandler) handle(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	revoked, err := h.AuthService.Logout(ctx, userID, input.ip)
	if err != nil {
		return nil, respond.Error(err, "logout failed")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("revokedTokens", revoked)
	}
	return message("Logged out successfully"), nil
}
