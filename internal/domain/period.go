package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodClose archives a closed billing period together with the log it was
// computed from.
type PeriodClose struct {
	ID             uuid.UUID          `json:"id"`
	AccountID      uuid.UUID          `json:"account_id"`
	PeriodNumber   int                `json:"period_number"`
	PeriodLength   int                `json:"period_length"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	ClosingBalance decimal.Decimal    `json:"closing_balance"`
	FinanceCharge  decimal.Decimal    `json:"finance_charge"`
	Entries        []TransactionEntry `json:"entries"`
	ClosedAt       time.Time          `json:"closed_at"`
}

type PeriodRepository interface {
	SavePeriodClose(ctx context.Context, period *PeriodClose) error
	ListPeriodCloses(ctx context.Context, accountID uuid.UUID) ([]PeriodClose, error)
}
