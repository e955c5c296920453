package user

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "users"

var columns = []any{
	"id", "email", "password_hash", "first_name", "last_name", "roles",
	"is_active", "created_at", "updated_at", "last_login_at",
}

const RoleUser = "User"

// User represents a registered user.
type User struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Roles        string     `db:"roles"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

// RoleList splits the stored comma-separated roles.
func (u *User) RoleList() []string {
	var roles []string
	for _, role := range strings.Split(u.Roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

type UserCreate struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Roles        []string
}

type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type IWriter interface {
	IReader
	Create(ctx context.Context, create *UserCreate) (*User, error)
	SetLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}
