package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/account"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
	"github.com/carson-networks/budgetforge/internal/storage/user"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

type mockOperator struct{ mock.Mock }

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type mockAccountReader struct{ mock.Mock }

func (m *mockAccountReader) FindByID(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccountReader) List(ctx context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*account.Account)
	return rows, args.Error(1)
}

type mockTransactionReader struct{ mock.Mock }

func (m *mockTransactionReader) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

type mockBillReader struct{ mock.Mock }

func (m *mockBillReader) FindByID(ctx context.Context, userID, id uuid.UUID) (*bill.Bill, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*bill.Bill)
	return row, args.Error(1)
}

func (m *mockBillReader) ListDue(ctx context.Context, filter *bill.DueFilter) ([]*bill.Bill, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*bill.Bill)
	return rows, args.Error(1)
}

func (m *mockBillReader) ListAutoPayDue(ctx context.Context, onOrBefore time.Time) ([]*bill.Bill, error) {
	args := m.Called(ctx, onOrBefore)
	rows, _ := args.Get(0).([]*bill.Bill)
	return rows, args.Error(1)
}

func (m *mockBillReader) ListPayments(ctx context.Context, billID uuid.UUID) ([]*bill.Payment, error) {
	args := m.Called(ctx, billID)
	rows, _ := args.Get(0).([]*bill.Payment)
	return rows, args.Error(1)
}

func (m *mockBillReader) ActiveExists(ctx context.Context, userID uuid.UUID, name string, dueDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, name, dueDate)
	return args.Bool(0), args.Error(1)
}

type mockUserReader struct{ mock.Mock }

func (m *mockUserReader) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserReader) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserReader) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(password, encoded string) bool {
	return m.Called(password, encoded).Bool(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) IssueAccessToken(userID uuid.UUID, email string, roles []string) (auth.IssuedToken, error) {
	args := m.Called(userID, email, roles)
	return args.Get(0).(auth.IssuedToken), args.Error(1)
}

func (m *mockTokens) ValidateExpiredAccessToken(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}

func (m *mockTokens) NewRefreshToken() (auth.RefreshToken, error) {
	args := m.Called()
	return args.Get(0).(auth.RefreshToken), args.Error(1)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type testDeps struct {
	operator     *mockOperator
	accounts     *mockAccountReader
	transactions *mockTransactionReader
	bills        *mockBillReader
	users        *mockUserReader
	hasher       *mockHasher
	tokens       *mockTokens
	events       *recordingPublisher
	logHook      *test.Hook
	deps         Dependencies
}

func newTestDeps() *testDeps {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	d := &testDeps{
		operator:     &mockOperator{},
		accounts:     &mockAccountReader{},
		transactions: &mockTransactionReader{},
		bills:        &mockBillReader{},
		users:        &mockUserReader{},
		hasher:       &mockHasher{},
		tokens:       &mockTokens{},
		events:       &recordingPublisher{},
		logHook:      hook,
	}
	d.deps = Dependencies{
		Reader: &storage.Reader{
			Users:        d.users,
			Accounts:     d.accounts,
			Transactions: d.transactions,
			Bills:        d.bills,
		},
		Operator: d.operator,
		Hasher:   d.hasher,
		Tokens:   d.tokens,
		Cache:    cache.NoopCache{},
		Events:   d.events,
		Log:      log,
		Now:      func() time.Time { return testNow },
	}
	return d
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func strPtr(s string) *string {
	return &s
}
