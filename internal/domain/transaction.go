package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryKindDraw    EntryKind = "draw"
	EntryKindPayment EntryKind = "payment"
)

// TransactionEntry is one cash-flow event in the open billing period.
// Amount is signed: draws are positive, payments negative. Only the principal
// portion of a payment is carried in Amount; whatever went to finance charges
// is in FinanceChargePaid.
type TransactionEntry struct {
	ID                uuid.UUID       `json:"id"`
	AccountID         uuid.UUID       `json:"account_id"`
	PeriodNumber      int             `json:"period_number"`
	Sequence          int             `json:"sequence"`
	DayOffset         int             `json:"day"`
	Kind              EntryKind       `json:"kind"`
	Amount            decimal.Decimal `json:"amount"`
	FinanceChargePaid decimal.Decimal `json:"finance_charge_paid"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TransactionRepository holds each account's open-period log. ListEntries
// returns entries ordered by day, then by arrival.
type TransactionRepository interface {
	AppendEntry(ctx context.Context, entry *TransactionEntry) error
	ListEntries(ctx context.Context, accountID uuid.UUID) ([]TransactionEntry, error)
	LastEntry(ctx context.Context, accountID uuid.UUID) (*TransactionEntry, error)
	ClearEntries(ctx context.Context, accountID uuid.UUID) error
}
