package accrual

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
)

var apr35 = decimal.RequireFromString("0.35")

func entry(day int, amount string) domain.TransactionEntry {
	return domain.TransactionEntry{DayOffset: day, Amount: decimal.RequireFromString(amount)}
}

func assertCharge(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSingleDrawHeldFullPeriod(t *testing.T) {
	charge, err := ChargeInterest(apr35, decimal.Zero, []domain.TransactionEntry{
		entry(0, "500"),
	}, 30)

	require.NoError(t, err)
	assertCharge(t, "14.38", charge)
}

func TestDrawPaymentDraw(t *testing.T) {
	charge, err := ChargeInterest(apr35, decimal.Zero, []domain.TransactionEntry{
		entry(0, "500"),
		entry(15, "-200"),
		entry(25, "100"),
	}, 30)

	require.NoError(t, err)
	assertCharge(t, "11.99", charge)
}

func TestEmptyLogAccruesNothing(t *testing.T) {
	charge, err := ChargeInterest(apr35, decimal.Zero, nil, 30)

	require.NoError(t, err)
	assert.True(t, charge.IsZero())
}

func TestOpeningBalanceAccruesForWholePeriod(t *testing.T) {
	charge, err := ChargeInterest(apr35, decimal.RequireFromString("500"), nil, 30)

	require.NoError(t, err)
	assertCharge(t, "14.38", charge)
}

func TestSameDayEntriesHaveNoWeight(t *testing.T) {
	batched, err := DayWeightedBalance(decimal.Zero, []domain.TransactionEntry{
		entry(10, "500"),
	}, 30)
	require.NoError(t, err)

	split, err := DayWeightedBalance(decimal.Zero, []domain.TransactionEntry{
		entry(10, "250"),
		entry(10, "300"),
		entry(10, "-50"),
	}, 30)
	require.NoError(t, err)

	assert.True(t, batched.Equal(split), "batched %s, split %s", batched, split)
	assert.True(t, decimal.NewFromInt(500*20).Equal(batched))
}

func TestEntryOnLastDay(t *testing.T) {
	charge, err := ChargeInterest(apr35, decimal.Zero, []domain.TransactionEntry{
		entry(30, "500"),
	}, 30)

	require.NoError(t, err)
	assert.True(t, charge.IsZero())
}

func TestRejectsInvalidInput(t *testing.T) {
	_, err := ChargeInterest(apr35, decimal.Zero, nil, 0)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidPeriodLength))

	_, err = ChargeInterest(apr35, decimal.Zero, []domain.TransactionEntry{entry(31, "10")}, 30)
	assert.True(t, stderrors.Is(err, errors.ErrDayOutOfPeriod))

	_, err = ChargeInterest(apr35, decimal.Zero, []domain.TransactionEntry{
		entry(10, "10"),
		entry(5, "10"),
	}, 30)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfOrderTransaction))
}
