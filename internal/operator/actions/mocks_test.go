package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/storage/account"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
	"github.com/carson-networks/budgetforge/internal/storage/token"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
	"github.com/carson-networks/budgetforge/internal/storage/user"
)

type mockAccountWriter struct {
	mock.Mock
}

func (m *mockAccountWriter) FindByID(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *mockAccountWriter) List(ctx context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	a, _ := args.Get(0).([]*account.Account)
	return a, args.Error(1)
}

func (m *mockAccountWriter) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *mockAccountWriter) Create(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	args := m.Called(ctx, create)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *mockAccountWriter) Update(ctx context.Context, id uuid.UUID, update *account.AccountUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockAccountWriter) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAccountWriter) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

type mockTransactionWriter struct {
	mock.Mock
}

func (m *mockTransactionWriter) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionWriter) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	t, _ := args.Get(0).([]*transaction.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionWriter) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionWriter) Update(ctx context.Context, id uuid.UUID, update *transaction.TransactionUpdate) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, update)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionWriter) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserWriter struct {
	mock.Mock
}

func (m *mockUserWriter) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserWriter) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserWriter) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserWriter) Create(ctx context.Context, create *user.UserCreate) (*user.User, error) {
	args := m.Called(ctx, create)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserWriter) SetLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserWriter) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

type mockTokenWriter struct {
	mock.Mock
}

func (m *mockTokenWriter) FindByHash(ctx context.Context, hash string) (*token.RefreshToken, error) {
	args := m.Called(ctx, hash)
	t, _ := args.Get(0).(*token.RefreshToken)
	return t, args.Error(1)
}

func (m *mockTokenWriter) FindByHashForUpdate(ctx context.Context, hash string) (*token.RefreshToken, error) {
	args := m.Called(ctx, hash)
	t, _ := args.Get(0).(*token.RefreshToken)
	return t, args.Error(1)
}

func (m *mockTokenWriter) Create(ctx context.Context, create *token.TokenCreate) (*token.RefreshToken, error) {
	args := m.Called(ctx, create)
	t, _ := args.Get(0).(*token.RefreshToken)
	return t, args.Error(1)
}

func (m *mockTokenWriter) Revoke(ctx context.Context, id uuid.UUID, ip string, replacedByHash *string) error {
	return m.Called(ctx, id, ip, replacedByHash).Error(0)
}

func (m *mockTokenWriter) RevokeAllForUser(ctx context.Context, userID uuid.UUID, ip string) (int64, error) {
	args := m.Called(ctx, userID, ip)
	return args.Get(0).(int64), args.Error(1)
}

type mockBillWriter struct {
	mock.Mock
}

func (m *mockBillWriter) FindByID(ctx context.Context, userID, id uuid.UUID) (*bill.Bill, error) {
	args := m.Called(ctx, userID, id)
	b, _ := args.Get(0).(*bill.Bill)
	return b, args.Error(1)
}

func (m *mockBillWriter) ListDue(ctx context.Context, filter *bill.DueFilter) ([]*bill.Bill, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*bill.Bill)
	return b, args.Error(1)
}

func (m *mockBillWriter) ListAutoPayDue(ctx context.Context, onOrBefore time.Time) ([]*bill.Bill, error) {
	args := m.Called(ctx, onOrBefore)
	b, _ := args.Get(0).([]*bill.Bill)
	return b, args.Error(1)
}

func (m *mockBillWriter) ListPayments(ctx context.Context, billID uuid.UUID) ([]*bill.Payment, error) {
	args := m.Called(ctx, billID)
	p, _ := args.Get(0).([]*bill.Payment)
	return p, args.Error(1)
}

func (m *mockBillWriter) ActiveExists(ctx context.Context, userID uuid.UUID, name string, dueDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, name, dueDate)
	return args.Bool(0), args.Error(1)
}

func (m *mockBillWriter) FindActiveForUpdate(ctx context.Context, userID, id uuid.UUID) (*bill.Bill, error) {
	args := m.Called(ctx, userID, id)
	b, _ := args.Get(0).(*bill.Bill)
	return b, args.Error(1)
}

func (m *mockBillWriter) Create(ctx context.Context, create *bill.BillCreate) (*bill.Bill, error) {
	args := m.Called(ctx, create)
	b, _ := args.Get(0).(*bill.Bill)
	return b, args.Error(1)
}

func (m *mockBillWriter) SaveSchedule(ctx context.Context, id uuid.UUID, schedule billing.Schedule) error {
	return m.Called(ctx, id, schedule).Error(0)
}

func (m *mockBillWriter) InsertPayment(ctx context.Context, create *bill.PaymentCreate) (*bill.Payment, error) {
	args := m.Called(ctx, create)
	p, _ := args.Get(0).(*bill.Payment)
	return p, args.Error(1)
}

func (m *mockBillWriter) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}
