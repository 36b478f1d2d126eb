package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
	"line-of-credit/internal/events"
	"line-of-credit/internal/policy"
)

// LedgerService mediates every change to an account and its transaction log.
// Operations on one account are serialized; different accounts proceed in
// parallel.
type LedgerService struct {
	store        domain.Store
	publisher    events.Publisher
	periodLength int
	logger       *slog.Logger
	now          func() time.Time

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewLedgerService(store domain.Store, publisher events.Publisher, periodLength int, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		store:        store,
		publisher:    publisher,
		periodLength: periodLength,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// PeriodLength is the billing period used when ClosePeriod is not given one.
func (s *LedgerService) PeriodLength() int {
	return s.periodLength
}

// lockAccount returns the held lock of an existing account. Locks are only
// created once the account is known to exist, so lookups of unknown ids leave
// nothing behind.
func (s *LedgerService) lockAccount(ctx context.Context, accountID uuid.UUID) (*sync.Mutex, error) {
	s.locksMu.Lock()
	mu, ok := s.locks[accountID]
	s.locksMu.Unlock()

	if !ok {
		// accounts are never deleted, so existence checked once holds
		if _, err := s.store.Accounts().GetAccount(ctx, accountID); err != nil {
			return nil, err
		}

		s.locksMu.Lock()
		mu, ok = s.locks[accountID]
		if !ok {
			mu = &sync.Mutex{}
			s.locks[accountID] = mu
		}
		s.locksMu.Unlock()
	}

	mu.Lock()
	return mu, nil
}

func (s *LedgerService) CreateAccount(ctx context.Context, annualRate, creditLimit decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Creating account", "annual_rate", annualRate, "credit_limit", creditLimit)

	if !annualRate.IsPositive() {
		return nil, errors.ErrInvalidRate
	}
	if !creditLimit.IsPositive() {
		return nil, errors.ErrInvalidCreditLimit
	}
	if !policy.IsWholeCents(creditLimit) {
		return nil, errors.ErrInvalidCreditLimit.WithDetails("credit limit must be in whole cents")
	}

	now := s.now()
	account := &domain.Account{
		ID:                    uuid.New(),
		AnnualRate:            annualRate,
		CreditLimit:           creditLimit,
		Balance:               decimal.Zero,
		AccruedFinanceCharges: decimal.Zero,
		PeriodNumber:          1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.store.Accounts().CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.locksMu.Lock()
	s.locks[account.ID] = &sync.Mutex{}
	s.locksMu.Unlock()

	s.logger.Info("Account created successfully", "account_id", account.ID)
	return account, nil
}

func (s *LedgerService) Statement(ctx context.Context, accountID uuid.UUID) (*domain.Statement, error) {
	mu, err := s.lockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer mu.Unlock()

	account, err := s.store.Accounts().GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Statement(), nil
}

// Transactions returns the open period's log in chronological order.
func (s *LedgerService) Transactions(ctx context.Context, accountID uuid.UUID) ([]domain.TransactionEntry, error) {
	mu, err := s.lockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer mu.Unlock()

	return s.store.Transactions().ListEntries(ctx, accountID)
}

// PeriodHistory returns every closed period of the account, oldest first.
func (s *LedgerService) PeriodHistory(ctx context.Context, accountID uuid.UUID) ([]domain.PeriodClose, error) {
	mu, err := s.lockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer mu.Unlock()

	return s.store.Periods().ListPeriodCloses(ctx, accountID)
}

// publish is called with the account lock held, so the events of one account
// leave in commit order.
func (s *LedgerService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	// the change is already committed; a lost event is logged, not undone
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			"event_type", event.EventType(),
			"key", event.PartitionKey(),
			"error", err)
	}
}
