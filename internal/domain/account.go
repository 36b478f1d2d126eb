package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a revolving line of credit. AnnualRate and CreditLimit are fixed
// at creation; Balance and AccruedFinanceCharges change only through the
// ledger service.
type Account struct {
	ID                    uuid.UUID       `json:"account_id"`
	AnnualRate            decimal.Decimal `json:"annual_rate"`
	CreditLimit           decimal.Decimal `json:"credit_limit"`
	Balance               decimal.Decimal `json:"balance"`
	AccruedFinanceCharges decimal.Decimal `json:"accrued_finance_charges"`
	PeriodNumber          int             `json:"period_number"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// AmountOwed is the principal plus unpaid finance charges.
func (a *Account) AmountOwed() decimal.Decimal {
	return a.Balance.Add(a.AccruedFinanceCharges)
}

// RemainingCredit is how much can still be drawn. It is negative while the
// account is over its limit.
func (a *Account) RemainingCredit() decimal.Decimal {
	return a.CreditLimit.Sub(a.AmountOwed())
}

// Statement is a read-only projection of an account.
type Statement struct {
	AccountID             uuid.UUID       `json:"account_id"`
	AnnualRate            decimal.Decimal `json:"annual_rate"`
	CreditLimit           decimal.Decimal `json:"credit_limit"`
	Balance               decimal.Decimal `json:"balance"`
	AccruedFinanceCharges decimal.Decimal `json:"accrued_finance_charges"`
	TotalPayoff           decimal.Decimal `json:"total_payoff"`
	RemainingCredit       decimal.Decimal `json:"remaining_credit"`
	PeriodNumber          int             `json:"period_number"`
}

func (a *Account) Statement() *Statement {
	return &Statement{
		AccountID:             a.ID,
		AnnualRate:            a.AnnualRate,
		CreditLimit:           a.CreditLimit,
		Balance:               a.Balance,
		AccruedFinanceCharges: a.AccruedFinanceCharges,
		TotalPayoff:           a.AmountOwed(),
		RemainingCredit:       a.RemainingCredit(),
		PeriodNumber:          a.PeriodNumber,
	}
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	// GetAccountForUpdate reads the account and holds it against concurrent
	// writers until the surrounding store transaction ends.
	GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error
}
