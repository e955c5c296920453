package service

import (
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(18, 2).
const moneyPlaces = 2

var moneyLimit = decimal.New(1, 18-moneyPlaces)

// validateAmount accepts a positive amount that the database stores as is.
// Without the scale check 0.001 would pass here and round to 0.00 on insert.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	return validateMoney("amount", amount)
}

func validateMoney(field string, value decimal.Decimal) error {
	if !value.Equal(value.Truncate(moneyPlaces)) {
		return validationError("%s must have at most %d decimal places", field, moneyPlaces)
	}
	if value.Abs().GreaterThanOrEqual(moneyLimit) {
		return validationError("%s is too large", field)
	}
	return nil
}
