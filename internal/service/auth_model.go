package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budgetforge/internal/storage/user"
)

// UserInfo is the public profile of a user.
type UserInfo struct {
	ID          uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	FullName    string
	Roles       []string
	LastLoginAt *time.Time
}

// AuthResult is returned by every operation that signs a user in.
type AuthResult struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
	User               UserInfo
}

type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginRequest struct {
	Email    string
	Password string
}

type RefreshRequest struct {
	AccessToken  string
	RefreshToken string
}

func userInfoFromStorage(u *user.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FirstName + " " + u.LastName,
		Roles:       u.RoleList(),
		LastLoginAt: u.LastLoginAt,
	}
}
