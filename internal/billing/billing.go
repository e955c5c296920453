package billing

import (
	"time"
)

// Frequency is how often a recurring bill comes due.
type Frequency int16

const (
	FrequencyWeekly Frequency = iota + 1
	FrequencyBiWeekly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyYearly
	FrequencyCustom
)

var frequencyNames = map[Frequency]string{
	FrequencyWeekly:    "Weekly",
	FrequencyBiWeekly:  "BiWeekly",
	FrequencyMonthly:   "Monthly",
	FrequencyQuarterly: "Quarterly",
	FrequencyYearly:    "Yearly",
	FrequencyCustom:    "Custom",
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	_, ok := frequencyNames[f]
	return ok
}

// ParseFrequency maps a frequency name back to its value.
func ParseFrequency(name string) (Frequency, bool) {
	for f, n := range frequencyNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// Status classifies a bill by how close its due date is.
type Status int8

const (
	StatusPending Status = iota
	StatusDueSoon
	StatusOverdue
)

func (s Status) String() string {
	switch s {
	case StatusDueSoon:
		return "DueSoon"
	case StatusOverdue:
		return "Overdue"
	default:
		return "Pending"
	}
}

// DueSoonWindowDays is the largest number of days until due that still counts as due soon.
const DueSoonWindowDays = 7

// Today truncates now to a civil date at UTC midnight.
func Today(now time.Time) time.Time {
	return DateOf(now.UTC())
}

// DateOf drops the clock part of t, keeping its calendar date in t's location, and returns it at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue is the whole number of calendar days from today to due. Negative when due is in the past.
func DaysUntilDue(due, today time.Time) int {
	return int(DateOf(due).Sub(DateOf(today)).Hours() / 24)
}

// Classify maps days until due to a Status.
func Classify(days int) Status {
	switch {
	case days < 0:
		return StatusOverdue
	case days <= DueSoonWindowDays:
		return StatusDueSoon
	default:
		return StatusPending
	}
}

// Advance returns the next due date after due for the given frequency.
// Custom frequencies are left unchanged.
func Advance(due time.Time, freq Frequency) time.Time {
	due = DateOf(due)
	switch freq {
	case FrequencyWeekly:
		return due.AddDate(0, 0, 7)
	case FrequencyBiWeekly:
		return due.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return AddMonthsSafe(due, 1)
	case FrequencyQuarterly:
		return AddMonthsSafe(due, 3)
	case FrequencyYearly:
		return AddYearsSafe(due, 1)
	default:
		return due
	}
}

// AddMonthsSafe adds months to date, clamping the day to the end of the target month
// instead of overflowing into the next one.
func AddMonthsSafe(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	return clampDay(firstOfTarget, d)
}

// AddYearsSafe adds years to date; Feb 29 lands on Feb 28 in non-leap years.
func AddYearsSafe(date time.Time, years int) time.Time {
	y, m, d := date.Date()
	firstOfTarget := time.Date(y+years, m, 1, 0, 0, 0, 0, time.UTC)
	return clampDay(firstOfTarget, d)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(firstOfMonth time.Time, day int) time.Time {
	if last := DaysInMonth(firstOfMonth); day > last {
		day = last
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day, 0, 0, 0, 0, time.UTC)
}
