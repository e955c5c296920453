package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/token"
	"github.com/carson-networks/budgetforge/internal/storage/user"
)

const (
	minPasswordLen = 8
	maxNameLen     = 100
)

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)

// AuthService registers users and signs them in and out.
type AuthService struct {
	users    user.IReader
	operator Operator
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      *logrus.Logger
	now      func() time.Time
}

func NewAuthService(deps Dependencies) *AuthService {
	return &AuthService{
		users:    deps.Reader.Users,
		operator: deps.Operator,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		log:      deps.Log,
		now:      deps.Now,
	}
}

// Register creates a user with the default role and signs them in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, ip string) (*AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err = validatePassword(req.Password); err != nil {
		return nil, err
	}
	firstName, err := validatePersonName("first name", req.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := validatePersonName("last name", req.LastName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateUser{
		Create: user.UserCreate{
			Email:        email,
			PasswordHash: hash,
			FirstName:    firstName,
			LastName:     lastName,
			Roles:        []string{user.RoleUser},
		},
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return s.signIn(ctx, action.Result, ip)
}

// Login checks the credentials of an active user and records the login.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive || !s.hasher.Verify(req.Password, u.PasswordHash) {
		return nil, errInvalidCredentials
	}

	loginAt := s.now().UTC()
	if err = s.operator.Process(ctx, &actions.RecordLogin{UserID: u.ID, At: loginAt}); err != nil {
		return nil, err
	}
	u.LastLoginAt = &loginAt

	return s.signIn(ctx, u, ip)
}

// Refresh trades a possibly expired access token plus a live refresh token
// for a new pair. The presented refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest, ip string) (*AuthResult, error) {
	claims, err := s.tokens.ValidateExpiredAccessToken(req.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	if req.RefreshToken == "" {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	u, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := s.tokens.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	rotate := &actions.RotateRefreshToken{
		UserID:  u.ID,
		OldHash: auth.HashRefreshToken(req.RefreshToken),
		Next: token.TokenCreate{
			TokenHash:   next.Hash,
			ExpiresAt:   next.ExpiresAt,
			CreatedByIP: ip,
		},
		IP:  ip,
		Now: s.now().UTC(),
	}
	if err = s.operator.Process(ctx, rotate); err != nil {
		return nil, err
	}

	access, err := s.tokens.IssueAccessToken(u.ID, u.Email, u.RoleList())
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:        access.Value,
		AccessTokenExpiry:  access.ExpiresAt,
		RefreshToken:       next.Value,
		RefreshTokenExpiry: next.ExpiresAt,
		User:               userInfoFromStorage(u),
	}, nil
}

// ChangePassword replaces the password after checking the current one.
// Every refresh token of the user is revoked.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, ip string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(currentPassword, u.PasswordHash) {
		return validationError("current password is incorrect")
	}
	if err = validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.operator.Process(ctx, &actions.ChangePassword{UserID: userID, PasswordHash: hash, IP: ip})
}

// Logout revokes every active refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, ip string) (int64, error) {
	action := &actions.RevokeRefreshTokens{UserID: userID, IP: ip}
	if err := s.operator.Process(ctx, action); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"userID":  userID,
		"revoked": action.Revoked,
	}).Info("Auth.Logout")
	return action.Revoked, nil
}

// Me returns the profile of the signed in user.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := userInfoFromStorage(u)
	return &info, nil
}

func (s *AuthService) activeUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: user not found or inactive", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: user not found or inactive", ErrUnauthorized)
	}
	return u, nil
}

// signIn issues an access token and persists a new refresh token for u.
func (s *AuthService) signIn(ctx context.Context, u *user.User, ip string) (*AuthResult, error) {
	access, err := s.tokens.IssueAccessToken(u.ID, u.Email, u.RoleList())
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	store := &actions.StoreRefreshToken{
		Create: token.TokenCreate{
			UserID:      u.ID,
			TokenHash:   refresh.Hash,
			ExpiresAt:   refresh.ExpiresAt,
			CreatedByIP: ip,
		},
	}
	if err = s.operator.Process(ctx, store); err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:        access.Value,
		AccessTokenExpiry:  access.ExpiresAt,
		RefreshToken:       refresh.Value,
		RefreshTokenExpiry: refresh.ExpiresAt,
		User:               userInfoFromStorage(u),
	}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("a valid email address is required")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return validationError("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func validatePersonName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("%s is required", field)
	}
	if len([]rune(name)) > maxNameLen {
		return "", validationError("%s must be at most %d characters", field, maxNameLen)
	}
	return name, nil
}
