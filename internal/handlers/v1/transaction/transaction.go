package transaction

import (
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction UUID"`
	AccountID       string  `json:"accountId" doc:"Account UUID"`
	Type            string  `json:"type" doc:"Transaction type"`
	Amount          string  `json:"amount" doc:"Decimal amount, always positive"`
	Description     string  `json:"description" doc:"Free text description"`
	Category        *string `json:"category,omitempty" doc:"Spending category"`
	TransactionDate string  `json:"transactionDate" doc:"RFC3339 transaction date"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		AccountID:       tx.AccountID.String(),
		Type:            tx.Type.String(),
		Amount:          tx.Amount.String(),
		Description:     tx.Description,
		Category:        tx.Category,
		TransactionDate: respond.FormatTime(tx.TransactionDate),
		CreatedAt:       respond.FormatTime(tx.CreatedAt),
	}
}

func fromServiceList(txs []service.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = fromService(tx)
	}
	return out
}
