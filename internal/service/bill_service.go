package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/events"
	"github.com/carson-networks/budgetforge/internal/operator/actions"
	"github.com/carson-networks/budgetforge/internal/storage/bill"
)

const (
	maxBillNameLen      = 120
	maxPaymentNotesLen  = 240
	defaultUpcomingDays = 30
	maxUpcomingDays     = 90
	autoPayNote         = "autopay"
)

// BillService tracks bills, their due dates and payments.
type BillService struct {
	bills    bill.IReader
	operator Operator
	cache    cache.Cache
	events   events.Publisher
	log      *logrus.Logger
	now      func() time.Time
}

func NewBillService(deps Dependencies) *BillService {
	return &BillService{
		bills:    deps.Reader.Bills,
		operator: deps.Operator,
		cache:    deps.Cache,
		events:   deps.Events,
		log:      deps.Log,
		now:      deps.Now,
	}
}

// CreateBill adds a bill. Recurring bills need a frequency.
func (s *BillService) CreateBill(ctx context.Context, userID uuid.UUID, create BillCreate) (*Bill, error) {
	name := strings.TrimSpace(create.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if len([]rune(name)) > maxBillNameLen {
		return nil, validationError("name must be at most %d characters", maxBillNameLen)
	}
	if err := validateAmount(create.Amount); err != nil {
		return nil, err
	}
	if create.DueDate.IsZero() {
		return nil, validationError("due date is required")
	}
	if create.IsRecurring && create.Frequency == nil {
		return nil, validationError("frequency is required for recurring bills")
	}
	if create.Frequency != nil && !create.Frequency.Valid() {
		return nil, validationError("unknown frequency")
	}
	category, err := normalizeCategory(create.Category)
	if err != nil {
		return nil, err
	}

	frequency := create.Frequency
	if !create.IsRecurring {
		frequency = nil
	}

	action := &actions.CreateBill{
		Create: bill.BillCreate{
			UserID:      userID,
			Name:        name,
			Amount:      create.Amount,
			DueDate:     billing.DateOf(create.DueDate),
			IsRecurring: create.IsRecurring,
			Frequency:   frequency,
			Category:    category,
			AutoPay:     create.AutoPay,
		},
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	s.invalidateUpcoming(ctx, userID)

	created := billFromStorage(action.Result)
	return &created, nil
}

// Upcoming lists active bills due within the next query.Days days, soonest
// first. Days outside 1..90 are clamped; zero or less means 30.
func (s *BillService) Upcoming(ctx context.Context, userID uuid.UUID, query UpcomingQuery) ([]UpcomingBill, error) {
	days := query.Days
	if days <= 0 {
		days = defaultUpcomingDays
	}
	if days > maxUpcomingDays {
		days = maxUpcomingDays
	}

	today := billing.Today(s.now())
	rows, err := s.upcomingWindow(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	until := today.AddDate(0, 0, days)
	result := []UpcomingBill{}
	for _, row := range rows {
		due := billing.DateOf(row.DueDate)
		if due.After(until) {
			continue
		}
		if due.Before(today) && !query.IncludeOverdue {
			continue
		}

		daysUntil := billing.DaysUntilDue(due, today)
		result = append(result, UpcomingBill{
			Bill:         billFromStorage(row),
			DaysUntilDue: daysUntil,
			Status:       billing.Classify(daysUntil),
		})
	}
	return result, nil
}

// GetBill returns a bill with its payment history. Inactive bills are included.
func (s *BillService) GetBill(ctx context.Context, userID, id uuid.UUID) (*BillDetails, error) {
	row, err := s.bills.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.bills.ListPayments(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	daysUntil := billing.DaysUntilDue(row.DueDate, billing.Today(s.now()))
	details := &BillDetails{
		Bill:         billFromStorage(row),
		DaysUntilDue: daysUntil,
		Status:       billing.Classify(daysUntil),
		Payments:     make([]BillPayment, len(payments)),
	}
	for i, payment := range payments {
		details.Payments[i] = paymentFromStorage(payment)
	}
	return details, nil
}

// PayBill records a payment and advances or closes the bill.
func (s *BillService) PayBill(ctx context.Context, userID, id uuid.UUID, pay BillPay) (*BillPaymentResult, error) {
	if err := validateAmount(pay.Amount); err != nil {
		return nil, err
	}
	notes, err := normalizeNotes(pay.Notes)
	if err != nil {
		return nil, err
	}

	paidAt := s.now().UTC()
	if pay.PaidAt != nil {
		paidAt = pay.PaidAt.UTC()
	}

	action := &actions.PayBill{
		UserID:    userID,
		BillID:    id,
		Amount:    pay.Amount,
		PaidAt:    paidAt,
		Notes:     notes,
		AccountID: pay.AccountID,
	}
	if err = s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	s.invalidateUpcoming(ctx, userID)

	result := &BillPaymentResult{
		Payment: paymentFromStorage(action.Payment),
		Bill:    billFromStorage(action.Bill),
	}
	if action.Transaction != nil {
		posted := transactionFromStorage(action.Transaction)
		result.Transaction = &posted
	}

	s.events.Publish(ctx, events.New(events.BillPaid, userID, result))
	return result, nil
}

// DeactivateBill stops tracking a bill. Its history stays readable.
func (s *BillService) DeactivateBill(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.operator.Process(ctx, &actions.DeactivateBill{UserID: userID, BillID: id}); err != nil {
		return err
	}
	s.invalidateUpcoming(ctx, userID)
	return nil
}

// AutoPayDue pays every active auto-pay bill due today or earlier in full.
// A failed bill is logged and skipped. It returns how many bills were paid
// and how many failed.
func (s *BillService) AutoPayDue(ctx context.Context) (int, int, error) {
	now := s.now().UTC()
	due, err := s.bills.ListAutoPayDue(ctx, billing.Today(now))
	if err != nil {
		return 0, 0, fmt.Errorf("list auto-pay bills: %w", err)
	}

	paid, failed := 0, 0
	for _, row := range due {
		if ctx.Err() != nil {
			return paid, failed, ctx.Err()
		}

		if billing.Settled(row.Schedule()) {
			s.log.WithField("billID", row.ID).Debug("Bills.AutoPay.AlreadyPaid")
			continue
		}

		note := autoPayNote
		action := &actions.PayBill{
			UserID: row.UserID,
			BillID: row.ID,
			Amount: row.Amount,
			PaidAt: now,
			Notes:  &note,
		}
		if err = s.operator.Process(ctx, action); err != nil {
			failed++
			s.log.WithError(err).WithFields(logrus.Fields{
				"billID": row.ID,
				"userID": row.UserID,
			}).Error("Bills.AutoPay")
			continue
		}
		paid++
		s.invalidateUpcoming(ctx, row.UserID)
		s.events.Publish(ctx, events.New(events.BillPaid, row.UserID, BillPaymentResult{
			Payment: paymentFromStorage(action.Payment),
			Bill:    billFromStorage(action.Bill),
		}))
	}
	return paid, failed, nil
}

// upcomingWindow returns the user's active bills due up to the widest
// window, overdue ones included, going through the cache first.
func (s *BillService) upcomingWindow(ctx context.Context, userID uuid.UUID, today time.Time) ([]*bill.Bill, error) {
	key := upcomingCacheKey(userID, today)

	var cached []*bill.Bill
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Bills.Upcoming.Cache")
	}
	if found && err == nil {
		return cached, nil
	}

	rows, err := s.bills.ListDue(ctx, &bill.DueFilter{
		UserID: userID,
		To:     today.AddDate(0, 0, maxUpcomingDays),
	})
	if err != nil {
		return nil, err
	}

	if err = s.cache.Set(ctx, key, rows, 0); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Bills.Upcoming.Cache")
	}
	return rows, nil
}

func (s *BillService) invalidateUpcoming(ctx context.Context, userID uuid.UUID) {
	key := upcomingCacheKey(userID, billing.Today(s.now()))
	if _, err := s.cache.Remove(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Bills.Upcoming.Invalidate")
	}
}

func upcomingCacheKey(userID uuid.UUID, today time.Time) string {
	return fmt.Sprintf("bills:upcoming:%s:%s", userID, today.Format(time.DateOnly))
}

// normalizeNotes trims payment notes; blank notes become nil.
func normalizeNotes(notes *string) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > maxPaymentNotesLen {
		return nil, validationError("notes must be at most %d characters", maxPaymentNotesLen)
	}
	return &trimmed, nil
}
