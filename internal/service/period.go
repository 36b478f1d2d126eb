package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"line-of-credit/internal/accrual"
	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
	"line-of-credit/internal/events"
)

// ClosePeriod charges interest for the open period, archives its log and
// opens the next period. A periodLength of zero uses the service default.
//
// An account with an empty log and nothing outstanding is left untouched:
// the returned record carries a zero charge and is not archived.
func (s *LedgerService) ClosePeriod(ctx context.Context, accountID uuid.UUID, periodLength int) (*domain.PeriodClose, error) {
	if periodLength == 0 {
		periodLength = s.periodLength
	}
	if periodLength < 0 {
		return nil, errors.ErrInvalidPeriodLength
	}

	s.logger.Info("Closing period", "account_id", accountID, "period_length", periodLength)

	mu, err := s.lockAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("Period close failed", "account_id", accountID, "error", err)
		return nil, err
	}
	defer mu.Unlock()

	period, account, err := s.closeLocked(ctx, accountID, periodLength)
	if err != nil {
		s.logger.Error("Period close failed", "account_id", accountID, "error", err)
		return nil, err
	}
	if account == nil {
		s.logger.Info("Nothing to accrue", "account_id", accountID, "period_number", period.PeriodNumber)
		return period, nil
	}

	s.logger.Info("Period closed",
		"account_id", accountID,
		"period_number", period.PeriodNumber,
		"finance_charge", period.FinanceCharge,
		"accrued_finance_charges", account.AccruedFinanceCharges)

	s.publish(ctx, events.PeriodClosed{
		PeriodID:              period.ID,
		AccountID:             accountID,
		PeriodNumber:          period.PeriodNumber,
		PeriodLength:          period.PeriodLength,
		FinanceCharge:         period.FinanceCharge,
		Balance:               account.Balance,
		AccruedFinanceCharges: account.AccruedFinanceCharges,
		ClosedAt:              period.ClosedAt,
	})
	return period, nil
}

// closeLocked reads the log, computes the charge and clears the log as one
// unit. The caller holds the account lock. The returned account is nil when
// nothing was written.
func (s *LedgerService) closeLocked(ctx context.Context, accountID uuid.UUID, periodLength int) (*domain.PeriodClose, *domain.Account, error) {
	var period *domain.PeriodClose
	var account *domain.Account

	err := s.store.WithTransaction(ctx, func(tx domain.Store) error {
		var err error
		account, err = tx.Accounts().GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		entries, err := tx.Transactions().ListEntries(ctx, accountID)
		if err != nil {
			return err
		}

		opening := openingBalance(account.Balance, entries)
		now := s.now()
		period = &domain.PeriodClose{
			AccountID:      accountID,
			PeriodNumber:   account.PeriodNumber,
			PeriodLength:   periodLength,
			OpeningBalance: opening,
			ClosingBalance: account.Balance,
			FinanceCharge:  decimal.Zero,
			Entries:        entries,
			ClosedAt:       now,
		}

		if len(entries) == 0 && account.Balance.IsZero() {
			account = nil
			return nil
		}

		charge, err := accrual.ChargeInterest(account.AnnualRate, opening, entries, periodLength)
		if err != nil {
			return err
		}
		period.ID = uuid.New()
		period.FinanceCharge = charge

		account.AccruedFinanceCharges = account.AccruedFinanceCharges.Add(charge)
		account.PeriodNumber++
		account.UpdatedAt = now

		if err := tx.Periods().SavePeriodClose(ctx, period); err != nil {
			return err
		}
		if err := tx.Transactions().ClearEntries(ctx, accountID); err != nil {
			return err
		}
		return tx.Accounts().UpdateAccount(ctx, account)
	})
	if err != nil {
		return nil, nil, err
	}
	return period, account, nil
}

// openingBalance recovers the principal carried into the period: every
// principal change of the period is in the log.
func openingBalance(balance decimal.Decimal, entries []domain.TransactionEntry) decimal.Decimal {
	opening := balance
	for _, e := range entries {
		opening = opening.Sub(e.Amount)
	}
	return opening
}
