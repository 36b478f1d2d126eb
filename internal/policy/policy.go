// Package policy decides whether a draw or payment is admissible for an
// account. The functions are pure and never change the account; callers are
// expected to have rejected non-positive amounts already.
package policy

import (
	"github.com/shopspring/decimal"

	"line-of-credit/internal/domain"
)

// CanDraw reports whether drawing amount keeps balance plus finance charges
// within the credit limit.
func CanDraw(account *domain.Account, amount decimal.Decimal) bool {
	return account.CreditLimit.GreaterThanOrEqual(account.AmountOwed().Add(amount))
}

// CanPayment reports whether amount does not exceed balance plus finance
// charges.
func CanPayment(account *domain.Account, amount decimal.Decimal) bool {
	return !account.AmountOwed().Sub(amount).IsNegative()
}

// MoneyPlaces is the precision money is stored and reported at.
const MoneyPlaces = 2

// IsWholeCents reports whether amount needs no rounding to be stored.
// Trailing zeros are allowed, so 10.500 is whole cents.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyPlaces))
}
