package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"line-of-credit/internal/domain"
)

func account(limit, balance, charges string) *domain.Account {
	return &domain.Account{
		CreditLimit:           decimal.RequireFromString(limit),
		Balance:               decimal.RequireFromString(balance),
		AccruedFinanceCharges: decimal.RequireFromString(charges),
	}
}

func TestCanDraw(t *testing.T) {
	tests := []struct {
		name    string
		account *domain.Account
		amount  string
		want    bool
	}{
		{"empty account within limit", account("1000", "0", "0"), "500", true},
		{"exactly to the limit", account("1000", "500", "0"), "500", true},
		{"one cent over", account("1000", "500", "0"), "500.01", false},
		{"finance charges count against the limit", account("1000", "500", "14.38"), "490", false},
		{"finance charges leave room", account("1000", "500", "14.38"), "485.62", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.account
			assert.Equal(t, tt.want, CanDraw(tt.account, decimal.RequireFromString(tt.amount)))
			assert.Equal(t, before, *tt.account)
		})
	}
}

func TestCanPayment(t *testing.T) {
	tests := []struct {
		name    string
		account *domain.Account
		amount  string
		want    bool
	}{
		{"partial payment", account("1000", "500", "0"), "200", true},
		{"full payoff", account("1000", "500", "14.38"), "514.38", true},
		{"payment into finance charges", account("1000", "500", "14.38"), "510", true},
		{"overpayment", account("1000", "500", "14.38"), "514.39", false},
		{"nothing owed", account("1000", "0", "0"), "0.01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPayment(tt.account, decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestIsWholeCents(t *testing.T) {
	tests := map[string]bool{
		"500":       true,
		"485.62":    true,
		"10.500":    true,
		"999.995":   false,
		"0.0000001": false,
		"-0.001":    false,
	}

	for amount, want := range tests {
		assert.Equal(t, want, IsWholeCents(decimal.RequireFromString(amount)), amount)
	}
}
