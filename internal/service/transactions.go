package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
	"line-of-credit/internal/events"
	"line-of-credit/internal/policy"
)

// Draw borrows amount against the line on the given day of the open period.
func (s *LedgerService) Draw(ctx context.Context, accountID uuid.UUID, day int, amount decimal.Decimal) (*domain.TransactionEntry, error) {
	return s.record(ctx, accountID, day, amount, domain.EntryKindDraw)
}

// Payment repays amount on the given day. Principal is paid down first and
// any remainder goes to accrued finance charges.
func (s *LedgerService) Payment(ctx context.Context, accountID uuid.UUID, day int, amount decimal.Decimal) (*domain.TransactionEntry, error) {
	return s.record(ctx, accountID, day, amount, domain.EntryKindPayment)
}

func (s *LedgerService) record(ctx context.Context, accountID uuid.UUID, day int, amount decimal.Decimal, kind domain.EntryKind) (*domain.TransactionEntry, error) {
	s.logger.Info("Processing transaction",
		"account_id", accountID,
		"kind", kind,
		"day", day,
		"amount", amount)

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}
	if !policy.IsWholeCents(amount) {
		return nil, errors.ErrInvalidAmount.WithDetails("amount must be in whole cents")
	}
	if day < 0 || day > s.periodLength {
		return nil, errors.ErrDayOutOfPeriod.WithDetails(fmt.Sprintf("day must be between 0 and %d", s.periodLength))
	}

	mu, err := s.lockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer mu.Unlock()

	entry, account, err := s.apply(ctx, accountID, day, amount, kind)
	if err != nil {
		s.logger.Warn("Transaction rejected", "account_id", accountID, "kind", kind, "error", err)
		return nil, err
	}

	s.logger.Info("Transaction recorded",
		"account_id", accountID,
		"entry_id", entry.ID,
		"balance", account.Balance)

	s.publish(ctx, events.TransactionRecorded{
		EntryID:           entry.ID,
		AccountID:         accountID,
		PeriodNumber:      entry.PeriodNumber,
		Kind:              string(kind),
		Day:               day,
		Amount:            entry.Amount,
		FinanceChargePaid: entry.FinanceChargePaid,
		Balance:           account.Balance,
		OccurredAt:        entry.CreatedAt,
	})
	return entry, nil
}

// apply validates and commits one entry. The caller holds the account lock.
// Nothing is written unless every check passes.
func (s *LedgerService) apply(ctx context.Context, accountID uuid.UUID, day int, amount decimal.Decimal, kind domain.EntryKind) (*domain.TransactionEntry, *domain.Account, error) {
	var entry *domain.TransactionEntry
	var account *domain.Account

	err := s.store.WithTransaction(ctx, func(tx domain.Store) error {
		var err error
		account, err = tx.Accounts().GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		last, err := tx.Transactions().LastEntry(ctx, accountID)
		if err != nil {
			return err
		}
		sequence := 1
		if last != nil {
			if day < last.DayOffset {
				return errors.NewAppErrorf(errors.OutOfOrderTransaction,
					"day %d precedes the most recent transaction on day %d", day, last.DayOffset)
			}
			sequence = last.Sequence + 1
		}

		entry = &domain.TransactionEntry{
			ID:                uuid.New(),
			AccountID:         accountID,
			PeriodNumber:      account.PeriodNumber,
			Sequence:          sequence,
			DayOffset:         day,
			Kind:              kind,
			FinanceChargePaid: decimal.Zero,
			CreatedAt:         s.now(),
		}

		switch kind {
		case domain.EntryKindDraw:
			if !policy.CanDraw(account, amount) {
				return errors.ErrCreditLimitExceeded.WithDetails("remaining credit " + account.RemainingCredit().StringFixed(2))
			}
			entry.Amount = amount
			account.Balance = account.Balance.Add(amount)
		case domain.EntryKindPayment:
			if !policy.CanPayment(account, amount) {
				return errors.ErrPaymentExceedsBalance.WithDetails("amount owed " + account.AmountOwed().StringFixed(2))
			}
			principal := decimal.Min(amount, account.Balance)
			entry.Amount = principal.Neg()
			entry.FinanceChargePaid = amount.Sub(principal)
			account.Balance = account.Balance.Sub(principal)
			account.AccruedFinanceCharges = account.AccruedFinanceCharges.Sub(entry.FinanceChargePaid)
		}
		account.UpdatedAt = entry.CreatedAt

		if err := tx.Transactions().AppendEntry(ctx, entry); err != nil {
			return err
		}
		return tx.Accounts().UpdateAccount(ctx, account)
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, account, nil
}
