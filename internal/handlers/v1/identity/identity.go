// Package identity serves registration, sign in and token refresh.
package identity

import (
	"net"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

// ClientIP captures the caller address for refresh token bookkeeping. The
// router's RealIP middleware has already applied X-Forwarded-For.
type ClientIP struct {
	ip string
}

func (c *ClientIP) Resolve(ctx huma.Context) []error {
	addr := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	c.ip = addr
	return nil
}

type UserInfo struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	FullName    string   `json:"fullName"`
	Roles       []string `json:"roles"`
	LastLoginAt *string  `json:"lastLoginAt,omitempty"`
}

// AuthResponse is returned by every endpoint that signs the caller in.
type AuthResponse struct {
	AccessToken        string   `json:"accessToken"`
	AccessTokenExpiry  string   `json:"accessTokenExpiry"`
	RefreshToken       string   `json:"refreshToken"`
	RefreshTokenExpiry string   `json:"refreshTokenExpiry"`
	User               UserInfo `json:"user"`
}

type AuthOutput struct {
	Body AuthResponse
}

// MessageOutput carries a plain confirmation message.
type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func message(text string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = text
	return out
}

func userFromService(u service.UserInfo) UserInfo {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserInfo{
		ID:          u.ID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName,
		Roles:       roles,
		LastLoginAt: respond.FormatOptionalTime(u.LastLoginAt),
	}
}

func authFromService(r *service.AuthResult) *AuthOutput {
	return &AuthOutput{Body: AuthResponse{
		AccessToken:        r.AccessToken,
		AccessTokenExpiry:  respond.FormatTime(r.AccessTokenExpiry),
		RefreshToken:       r.RefreshToken,
		RefreshTokenExpiry: respond.FormatTime(r.RefreshTokenExpiry),
		User:               userFromService(r.User),
	}}
}
