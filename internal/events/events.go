package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeTransactionRecorded = "transaction.recorded"
	TypePeriodClosed        = "period.closed"
)

// Event is published after a ledger change has been committed.
type Event interface {
	EventType() string
	// PartitionKey keeps all events of one account in order.
	PartitionKey() string
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type TransactionRecorded struct {
	EntryID           uuid.UUID       `json:"entry_id"`
	AccountID         uuid.UUID       `json:"account_id"`
	PeriodNumber      int             `json:"period_number"`
	Kind              string          `json:"kind"`
	Day               int             `json:"day"`
	Amount            decimal.Decimal `json:"amount"`
	FinanceChargePaid decimal.Decimal `json:"finance_charge_paid"`
	Balance           decimal.Decimal `json:"balance"`
	OccurredAt        time.Time       `json:"occurred_at"`
}

func (e TransactionRecorded) EventType() string    { return TypeTransactionRecorded }
func (e TransactionRecorded) PartitionKey() string { return e.AccountID.String() }

type PeriodClosed struct {
	PeriodID              uuid.UUID       `json:"period_id"`
	AccountID             uuid.UUID       `json:"account_id"`
	PeriodNumber          int             `json:"period_number"`
	PeriodLength          int             `json:"period_length"`
	FinanceCharge         decimal.Decimal `json:"finance_charge"`
	Balance               decimal.Decimal `json:"balance"`
	AccruedFinanceCharges decimal.Decimal `json:"accrued_finance_charges"`
	ClosedAt              time.Time       `json:"closed_at"`
}

func (e PeriodClosed) EventType() string    { return TypePeriodClosed }
func (e PeriodClosed) PartitionKey() string { return e.AccountID.String() }

// LogPublisher writes events to the logger. It is used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "Event published",
		"event_type", event.EventType(),
		"key", event.PartitionKey(),
		"event", event)
	return nil
}

var _ Publisher = (*LogPublisher)(nil)
