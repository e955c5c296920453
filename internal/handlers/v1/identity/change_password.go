package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
)

type ChangePasswordInput struct {
	ClientIP
	Body struct {
		CurrentPassword string `json:"currentPassword" maxLength:"128"`
		NewPassword     string `json:"newPassword" minLength:"8" maxLength:"128"`
	}
}

type passwordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, ip string) error
}

// ChangePasswordHandler handles POST /api/auth/change-password.
type ChangePasswordHandler struct {
	AuthService passwordChanger
}

func NewChangePasswordHandler(svc passwordChanger) *ChangePasswordHandler {
	return &ChangePasswordHandler{AuthService: svc}
}

func (h *ChangePasswordHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "change-password",
		Method:      http.MethodPost,
		Path:        "/api/auth/change-password",
		Summary:     "Change the caller's password",
		Description: "Signs the caller out of every other session by revoking their refresh tokens.",
		Tags:        []string{"Auth"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *ChangePasswordHandler) handle(ctx context.Context, input *ChangePasswordInput) (*MessageOutput, error) {
	userID, err := respond.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err = h.AuthService.ChangePassword(ctx, userID, input.Body.CurrentPassword, input.Body.NewPassword, input.ip); err != nil {
		return nil, respond.Error(err, "password change failed")
	}
	return message("Password changed successfully"), nil
}
