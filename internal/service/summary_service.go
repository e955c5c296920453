package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/ledger"
	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

const (
	topCategoryCount      = 5
	uncategorizedCategory = "Uncategorized"
)

type MonthlyTotal struct {
	Year    int
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// BudgetSummary is the income and spending picture of a date range.
type BudgetSummary struct {
	From          time.Time
	To            time.Time
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Net           decimal.Decimal
	Monthly       []MonthlyTotal
	TopCategories []CategoryTotal
}

// SummaryService builds budget summaries from the user's transactions.
type SummaryService struct {
	transactions transaction.IReader
}

func NewSummaryService(deps Dependencies) *SummaryService {
	return &SummaryService{transactions: deps.Reader.Transactions}
}

// GetSummary buckets the user's transactions between from and to by calendar
// month. An accountID narrows the summary to one account.
func (s *SummaryService) GetSummary(ctx context.Context, userID uuid.UUID, from, to time.Time, accountID *uuid.UUID) (*BudgetSummary, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, validationError("provide valid from/to query params")
	}

	rows, err := s.transactions.List(ctx, &transaction.TransactionFilter{
		UserID:    userID,
		AccountID: accountID,
		From:      &from,
		To:        &to,
	})
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{
		From:          from,
		To:            to,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Monthly:       []MonthlyTotal{},
		TopCategories: []CategoryTotal{},
	}

	months := make(map[int]*MonthlyTotal)
	categories := make(map[string]decimal.Decimal)
	for _, row := range rows {
		date := row.TransactionDate.UTC()
		key := date.Year()*12 + int(date.Month())
		bucket, ok := months[key]
		if !ok {
			bucket = &MonthlyTotal{Year: date.Year(), Month: date.Month(), Income: decimal.Zero, Expense: decimal.Zero}
			months[key] = bucket
		}

		if ledger.IsCredit(row.Type) {
			bucket.Income = bucket.Income.Add(row.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(row.Amount)
			continue
		}
		bucket.Expense = bucket.Expense.Add(row.Amount)
		summary.TotalExpenses = summary.TotalExpenses.Add(row.Amount)

		category := uncategorizedCategory
		if row.Category != nil && *row.Category != "" {
			category = *row.Category
		}
		categories[category] = categories[category].Add(row.Amount)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)

	keys := make([]int, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	for _, key := range keys {
		summary.Monthly = append(summary.Monthly, *months[key])
	}

	for category, amount := range categories {
		summary.TopCategories = append(summary.TopCategories, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(summary.TopCategories, func(i, j int) bool {
		a, b := summary.TopCategories[i], summary.TopCategories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	if len(summary.TopCategories) > topCategoryCount {
		summary.TopCategories = summary.TopCategories[:topCategoryCount]
	}

	return summary, nil
}
