package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/ledger"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage"
	"github.com/carson-networks/budgetforge/internal/storage/account"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

const (
	defaultLimit          = 20
	maxDescriptionLen     = 200
	maxCategoryLen        = 60
	futureTimestampLeeway = 2 * time.Minute
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	transactions transaction.IReader
	accounts     account.IReader
	operator     Operator
	events       events.Publisher
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(deps Dependencies) *TransactionService {
	return &TransactionService{
		transactions: deps.Reader.Transactions,
		accounts:     deps.Reader.Accounts,
		operator:     deps.Operator,
		events:       deps.Events,
		now:          deps.Now,
	}
}

// CreateTransaction records a transaction and moves the account balance.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, create TransactionCreate) (*Transaction, error) {
	if !create.Type.Valid() {
		return nil, validationError("unknown transaction type")
	}
	if err := validateAmount(create.Amount); err != nil {
		return nil, err
	}
	description, err := validateDescription(create.Description)
	if err != nil {
		return nil, err
	}
	category, err := normalizeCategory(create.Category)
	if err != nil {
		return nil, err
	}

	transactionDate := s.now().UTC()
	if create.Timestamp != nil {
		if err = s.validateTimestamp(*create.Timestamp); err != nil {
			return nil, err
		}
		transactionDate = create.Timestamp.UTC()
	}

	action := &actions.CreateTransaction{
		UserID: userID,
		Create: transaction.TransactionCreate{
			AccountID:       create.AccountID,
			Type:            create.Type,
			Description:     description,
			Category:        category,
			Amount:          create.Amount,
			TransactionDate: transactionDate,
		},
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	created := transactionFromStorage(action.Result)
	s.events.Publish(ctx, events.New(events.TransactionCreated, userID, created))
	return &created, nil
}

// GetTransaction returns one of the user's live transactions.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	row, err := s.transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	result := transactionFromStorage(row)
	return &result, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, query TransactionQuery, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, nil, validationError("from must not be after to")
	}

	// Rows are ordered by transaction date, not creation time, so the
	// created_at bound is fixed before the first query. A backdated row
	// created later would otherwise slip under an earlier page.
	limit := defaultLimit
	offset := 0
	maxCreationTime := s.now().UTC()
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		UserID:          userID,
		AccountID:       query.AccountID,
		From:            query.From,
		To:              query.To,
		Limit:           limit + 1,
		Offset:          offset,
		MaxCreationTime: &maxCreationTime,
	}

	rows, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: maxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}

	return converted, nextCursor, nil
}

// ListByAccount returns every live transaction of an account, newest first.
// An account the user does not own yields an empty list.
func (s *TransactionService) ListByAccount(ctx context.Context, userID, accountID uuid.UUID) ([]Transaction, error) {
	if _, err := s.accounts.FindByID(ctx, userID, accountID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{UserID: userID, AccountID: &accountID})
	if err != nil {
		return nil, err
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nil
}

// UpdateTransaction edits a transaction and re-posts it to the account balance.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id uuid.UUID, update TransactionUpdate) (*Transaction, error) {
	var storageUpdate transaction.TransactionUpdate

	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, validationError("unknown transaction type")
		}
		storageUpdate.Type = omit.From(*update.Type)
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return nil, err
		}
		storageUpdate.Amount = omit.From(*update.Amount)
	}
	if update.Description != nil {
		description, err := validateDescription(*update.Description)
		if err != nil {
			return nil, err
		}
		storageUpdate.Description = omit.From(description)
	}
	if update.Category != nil {
		category, err := normalizeCategory(update.Category)
		if err != nil {
			return nil, err
		}
		if category != nil {
			storageUpdate.Category = omit.From(*category)
		}
	}
	if update.Timestamp != nil {
		if err := s.validateTimestamp(*update.Timestamp); err != nil {
			return nil, err
		}
		storageUpdate.TransactionDate = omit.From(update.Timestamp.UTC())
	}

	action := &actions.UpdateTransaction{UserID: userID, TransactionID: id, Update: storageUpdate}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	updated := transactionFromStorage(action.Result)
	s.events.Publish(ctx, events.New(events.TransactionUpdated, userID, updated))
	return &updated, nil
}

// DeleteTransaction soft-deletes a transaction and reverses its balance effect.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	action := &actions.DeleteTransaction{UserID: userID, TransactionID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return err
	}

	s.events.Publish(ctx, events.New(events.TransactionDeleted, userID, map[string]string{
		"id":        id.String(),
		"accountId": action.Deleted.AccountID.String(),
	}))
	return nil
}

// GetSummary totals the user's transactions in an optional date range.
// Credit types count as income and debit types as expenses.
func (s *TransactionService) GetSummary(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*TransactionSummary, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, validationError("from must not be after to")
	}

	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	summary := &TransactionSummary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	byType := make(map[transaction.Type]*TransactionTypeSummary)
	for _, row := range rows {
		summary.Count++
		if ledger.IsCredit(row.Type) {
			summary.TotalIncome = summary.TotalIncome.Add(row.Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(row.Amount)
		}

		entry, ok := byType[row.Type]
		if !ok {
			entry = &TransactionTypeSummary{Type: row.Type, Total: decimal.Zero}
			byType[row.Type] = entry
		}
		entry.Count++
		entry.Total = entry.Total.Add(row.Amount)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)

	for t := transaction.TypeIncome; t <= transaction.TypeDeposit; t++ {
		if entry, ok := byType[t]; ok {
			summary.ByType = append(summary.ByType, *entry)
		}
	}
	return summary, nil
}

func (s *TransactionService) validateTimestamp(ts time.Time) error {
	if ts.After(s.now().Add(futureTimestampLeeway)) {
		return validationError("timestamp cannot be more than 2 minutes in the future")
	}
	return nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if len([]rune(description)) > maxDescriptionLen {
		return "", validationError("description must be at most %d characters", maxDescriptionLen)
	}
	return description, nil
}

// normalizeCategory trims a category; blank categories become nil.
func normalizeCategory(category *string) (*string, error) {
	if category == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > maxCategoryLen {
		return nil, validationError("category must be at most %d characters", maxCategoryLen)
	}
	return &trimmed, nil
}
