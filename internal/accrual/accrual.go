// Package accrual computes the simple-interest finance charge for a closed
// billing period.
//
// The period is split into balance shelves: the principal stays constant
// between two consecutive entries and between the last entry and the end of
// the period. Each shelf contributes balance × rate / 365 × days. Interest is
// never compounded; finance charges already accrued are not part of the
// principal the shelves are built from.
package accrual

import (
	"github.com/shopspring/decimal"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
)

const (
	DaysPerYear = 365

	// ChargePlaces is the number of decimal places a finance charge is
	// rounded to.
	ChargePlaces = 2
)

var daysPerYear = decimal.NewFromInt(DaysPerYear)

// ChargeInterest returns the finance charge for one period, rounded half away
// from zero to cents. openingBalance is the principal carried into the period
// and entries is the period's log in chronological order.
func ChargeInterest(annualRate, openingBalance decimal.Decimal, entries []domain.TransactionEntry, periodLength int) (decimal.Decimal, error) {
	weighted, err := DayWeightedBalance(openingBalance, entries, periodLength)
	if err != nil {
		return decimal.Zero, err
	}
	return weighted.Mul(annualRate).Div(daysPerYear).Round(ChargePlaces), nil
}

// DayWeightedBalance sums balance × days over every shelf of the period.
// Multiplying by the daily rate last keeps the sum exact.
func DayWeightedBalance(openingBalance decimal.Decimal, entries []domain.TransactionEntry, periodLength int) (decimal.Decimal, error) {
	if periodLength <= 0 {
		return decimal.Zero, errors.ErrInvalidPeriodLength
	}

	running := openingBalance
	lastDay := 0
	total := decimal.Zero

	for _, e := range entries {
		if e.DayOffset < lastDay {
			return decimal.Zero, errors.ErrOutOfOrderTransaction.WithDetails(
				"entry " + e.ID.String() + " is out of chronological order")
		}
		if e.DayOffset > periodLength {
			return decimal.Zero, errors.NewAppErrorf(errors.DayOutOfPeriod,
				"day %d is beyond the %d-day period", e.DayOffset, periodLength)
		}
		total = total.Add(shelf(running, e.DayOffset-lastDay))
		lastDay = e.DayOffset
		running = running.Add(e.Amount)
	}

	return total.Add(shelf(running, periodLength-lastDay)), nil
}

func shelf(balance decimal.Decimal, days int) decimal.Decimal {
	return balance.Mul(decimal.NewFromInt(int64(days)))
}
