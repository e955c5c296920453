package bill

import (
	"time"

	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

// Bill is the API response model for a bill.
type Bill struct {
	ID          string  `json:"id" doc:"Bill UUID"`
	Name        string  `json:"name"`
	Amount      string  `json:"amount" doc:"Decimal amount due"`
	DueDate     string  `json:"dueDate" doc:"Next due date, YYYY-MM-DD"`
	IsRecurring bool    `json:"isRecurring"`
	Frequency   *string `json:"frequency,omitempty" doc:"Recurrence frequency"`
	Category    *string `json:"category,omitempty"`
	AutoPay     bool    `json:"autoPay"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	LastPaidAt  *string `json:"lastPaidAt,omitempty"`
}

// UpcomingBill is a bill with its distance to the due date.
type UpcomingBill struct {
	Bill
	DaysUntilDue int    `json:"daysUntilDue" doc:"Calendar days until due, negative when overdue"`
	Status       string `json:"status" enum:"Pending,DueSoon,Overdue"`
}

type Payment struct {
	ID     string  `json:"id"`
	PaidAt string  `json:"paidAt"`
	Amount string  `json:"amount"`
	Notes  *string `json:"notes,omitempty"`
}

func fromService(b service.Bill) Bill {
	out := Bill{
		ID:          b.ID.String(),
		Name:        b.Name,
		Amount:      b.Amount.String(),
		DueDate:     b.DueDate.Format(time.DateOnly),
		IsRecurring: b.IsRecurring,
		Category:    b.Category,
		AutoPay:     b.AutoPay,
		IsActive:    b.IsActive,
		CreatedAt:   respond.FormatTime(b.CreatedAt),
		LastPaidAt:  respond.FormatOptionalTime(b.LastPaidAt),
	}
	if b.Frequency != nil {
		name := b.Frequency.String()
		out.Frequency = &name
	}
	return out
}

func paymentFromService(p service.BillPayment) Payment {
	return Payment{
		ID:     p.ID.String(),
		PaidAt: respond.FormatTime(p.PaidAt),
		Amount: p.Amount.String(),
		Notes:  p.Notes,
	}
}
