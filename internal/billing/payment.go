package billing

import (
	"time"
)

// Schedule is the part of a bill that a payment changes.
type Schedule struct {
	DueDate     time.Time
	IsRecurring bool
	Frequency   *Frequency
	IsActive    bool
	LastPaidAt  *time.Time
}

// ApplyPayment records a payment made at paidAt. One-off bills are closed;
// recurring bills move on to their next due date. A recurring bill without a
// frequency is treated as monthly.
func ApplyPayment(s Schedule, paidAt time.Time) Schedule {
	paid := paidAt.UTC()
	s.LastPaidAt = &paid

	if !s.IsRecurring {
		s.IsActive = false
		return s
	}

	freq := FrequencyMonthly
	if s.Frequency != nil {
		freq = *s.Frequency
	}
	s.DueDate = Advance(s.DueDate, freq)
	return s
}

// Settled reports whether the current due date has already been paid. Only a
// bill whose due date stays put on payment (custom frequency or one-off) can
// be past due and settled at once; other recurring bills move on when paid.
func Settled(s Schedule) bool {
	if s.LastPaidAt == nil {
		return false
	}
	if s.IsRecurring && (s.Frequency == nil || *s.Frequency != FrequencyCustom) {
		return false
	}
	return !DateOf(*s.LastPaidAt).Before(DateOf(s.DueDate))
}
