package account

import (
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond"
	"github.com/carson-networks/budgetforge/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	Name      string `json:"name" doc:"Account name"`
	Type      int    `json:"type" doc:"Account type: 0=Checking, 1=Savings, 2=Credit, 3=Investment, 4=Cash"`
	TypeName  string `json:"typeName" doc:"Account type name"`
	Currency  string `json:"currency" doc:"ISO 4217 currency code"`
	Balance   string `json:"balance" doc:"Decimal balance"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last update time"`
}

func fromService(a service.Account) Account {
	return Account{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      int(a.Type),
		TypeName:  a.Type.String(),
		Currency:  a.Currency,
		Balance:   a.Balance.String(),
		CreatedAt: respond.FormatTime(a.CreatedAt),
		UpdatedAt: respond.FormatTime(a.UpdatedAt),
	}
}
