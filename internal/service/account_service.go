package service

import (
	"context"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage/account"
)

const (
	defaultAccountLimit = 20
	maxAccountNameLen   = 100
	defaultCurrency     = "CAD"
)

// AccountService handles account business logic.
type AccountService struct {
	accounts account.IReader
	operator Operator
	events   events.Publisher
}

// NewAccountService creates a new AccountService.
func NewAccountService(deps Dependencies) *AccountService {
	return &AccountService{
		accounts: deps.Reader.Accounts,
		operator: deps.Operator,
		events:   deps.Events,
	}
}

// CreateAccount opens an account for userID with its starting balance.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, create AccountCreate) (*Account, error) {
	name, err := validateAccountName(create.Name)
	if err != nil {
		return nil, err
	}
	if !create.Type.Valid() {
		return nil, validationError("account type must be between 0 and 4")
	}
	currency, err := normalizeCurrency(create.Currency)
	if err != nil {
		return nil, err
	}
	if create.InitialBalance.IsNegative() {
		return nil, validationError("initial balance cannot be negative")
	}
	if err = validateMoney("initial balance", create.InitialBalance); err != nil {
		return nil, err
	}

	action := &actions.CreateAccount{
		Create: account.AccountCreate{
			UserID:         userID,
			Name:           name,
			Type:           create.Type,
			Currency:       currency,
			InitialBalance: create.InitialBalance,
		},
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	created := accountFromStorage(action.Result)
	s.events.Publish(ctx, events.New(events.AccountCreated, userID, created))
	return &created, nil
}

// GetAccount returns one of the user's live accounts.
func (s *AccountService) GetAccount(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	row, err := s.accounts.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	result := accountFromStorage(row)
	return &result, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.accounts.List(ctx, &account.AccountFilter{
		UserID: userID,
		Limit:  limit + 1,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Account, len(rows))
	for i, row := range rows {
		converted[i] = accountFromStorage(row)
	}

	return converted, nextCursor, nil
}

// UpdateAccount changes name, type or currency. The balance only moves
// through transactions.
func (s *AccountService) UpdateAccount(ctx context.Context, userID, id uuid.UUID, update AccountUpdate) (*Account, error) {
	var storageUpdate account.AccountUpdate

	if update.Name != nil {
		name, err := validateAccountName(*update.Name)
		if err != nil {
			return nil, err
		}
		storageUpdate.Name = omit.From(name)
	}
	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, validationError("account type must be between 0 and 4")
		}
		storageUpdate.Type = omit.From(*update.Type)
	}
	if update.Currency != nil {
		currency, err := normalizeCurrency(*update.Currency)
		if err != nil {
			return nil, err
		}
		storageUpdate.Currency = omit.From(currency)
	}

	action := &actions.UpdateAccount{UserID: userID, AccountID: id, Update: storageUpdate}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	result := accountFromStorage(action.Result)
	return &result, nil
}

// DeleteAccount soft-deletes the account.
func (s *AccountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteAccount{UserID: userID, AccountID: id})
}

// GetAccountSummary totals the user's live accounts overall and per type.
func (s *AccountService) GetAccountSummary(ctx context.Context, userID uuid.UUID) (*AccountSummary, error) {
	rows, err := s.accounts.List(ctx, &account.AccountFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{TotalBalance: decimal.Zero}
	byType := make(map[account.Type]*AccountTypeSummary)
	for _, row := range rows {
		summary.TotalAccounts++
		summary.TotalBalance = summary.TotalBalance.Add(row.Balance)

		entry, ok := byType[row.Type]
		if !ok {
			entry = &AccountTypeSummary{Type: row.Type, Balance: decimal.Zero}
			byType[row.Type] = entry
		}
		entry.Count++
		entry.Balance = entry.Balance.Add(row.Balance)
	}

	for t := account.TypeChecking; t <= account.TypeCash; t++ {
		if entry, ok := byType[t]; ok {
			summary.ByType = append(summary.ByType, *entry)
		}
	}
	return summary, nil
}

func validateAccountName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("name is required")
	}
	if len([]rune(name)) > maxAccountNameLen {
		return "", validationError("name must be at most %d characters", maxAccountNameLen)
	}
	return name, nil
}

func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return defaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", validationError("currency must be a 3-letter code")
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", validationError("currency must be a 3-letter code")
		}
	}
	return currency, nil
}
