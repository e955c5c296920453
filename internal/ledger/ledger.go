// Package ledger decides how a transaction moves an account balance.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budgetforge/internal/storage/transaction"
)

// IsCredit reports whether a transaction of type t adds to the balance.
func IsCredit(t transaction.Type) bool {
	switch t {
	case transaction.TypeIncome, transaction.TypeDeposit, transaction.TypeTransferIn:
		return true
	default:
		return false
	}
}

// BalanceEffect is the signed change a transaction makes to its account.
// Amounts are positive; debit types return the negated amount.
func BalanceEffect(t transaction.Type, amount decimal.Decimal) decimal.Decimal {
	if IsCredit(t) {
		return amount
	}
	return amount.Neg()
}

// Post applies a transaction to balance.
func Post(balance decimal.Decimal, t transaction.Type, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(BalanceEffect(t, amount))
}

// Reverse undoes a previously posted transaction.
func Reverse(balance decimal.Decimal, t transaction.Type, amount decimal.Decimal) decimal.Decimal {
	return balance.Sub(BalanceEffect(t, amount))
}
