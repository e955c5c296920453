package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage"
)

// Operator runs write actions in their own database transaction.
type Operator interface {
	Process(ctx context.Context, action actions.IAction) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

type TokenIssuer interface {
	IssueAccessToken(userID uuid.UUID, email string, roles []string) (auth.IssuedToken, error)
	ValidateExpiredAccessToken(tokenString string) (*auth.Claims, error)
	NewRefreshToken() (auth.RefreshToken, error)
}

// Dependencies wires the services together.
type Dependencies struct {
	Reader   *storage.Reader
	Operator Operator
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Cache    cache.Cache
	Events   events.Publisher
	Log      *logrus.Logger
	Now      func() time.Time
}

// Service holds all business logic services.
type Service struct {
	Auth        *AuthService
	Account     *AccountService
	Transaction *TransactionService
	Bill        *BillService
	Summary     *SummaryService
}

// NewService creates every service from one set of dependencies.
func NewService(deps Dependencies) *Service {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Cache == nil {
		deps.Cache = cache.NoopCache{}
	}
	if deps.Events == nil {
		deps.Events = events.NewLogPublisher(deps.Log)
	}

	return &Service{
		Auth:        NewAuthService(deps),
		Account:     NewAccountService(deps),
		Transaction: NewTransactionService(deps),
		Bill:        NewBillService(deps),
		Summary:     NewSummaryService(deps),
	}
}
