package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
)

type periodRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewPeriodRepository(db SQLExecutor, logger *slog.Logger) domain.PeriodRepository {
	return &periodRepository{
		db:     db,
		logger: logger,
	}
}

func (r *periodRepository) SavePeriodClose(ctx context.Context, period *domain.PeriodClose) error {
	query := `
		INSERT INTO period_closes
		(id, account_id, period_number, period_length, opening_balance, closing_balance, finance_charge, entries, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	entries, err := json.Marshal(period.Entries)
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to encode archived entries").WithDetails(err.Error())
	}

	_, err = r.db.ExecContext(ctx,
		query,
		period.ID,
		period.AccountID,
		period.PeriodNumber,
		period.PeriodLength,
		period.OpeningBalance.String(),
		period.ClosingBalance.String(),
		period.FinanceCharge.String(),
		string(entries),
		period.ClosedAt,
	)
	if err != nil {
		r.logger.Error("Failed to archive period",
			"account_id", period.AccountID,
			"period_number", period.PeriodNumber,
			"error", err)
		return errors.NewAppError(errors.InternalError, "failed to archive period").WithDetails(err.Error())
	}

	r.logger.Info("Period archived",
		"account_id", period.AccountID,
		"period_number", period.PeriodNumber,
		"finance_charge", period.FinanceCharge)
	return nil
}

func (r *periodRepository) ListPeriodCloses(ctx context.Context, accountID uuid.UUID) ([]domain.PeriodClose, error) {
	query := `
		SELECT id, account_id, period_number, period_length, opening_balance, closing_balance, finance_charge, entries, closed_at
		FROM period_closes
		WHERE account_id = $1
		ORDER BY period_number
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		r.logger.Error("Failed to list periods", "account_id", accountID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list periods").WithDetails(err.Error())
	}
	defer rows.Close()

	var periods []domain.PeriodClose
	for rows.Next() {
		var period domain.PeriodClose
		var entries []byte

		if err := rows.Scan(
			&period.ID,
			&period.AccountID,
			&period.PeriodNumber,
			&period.PeriodLength,
			&period.OpeningBalance,
			&period.ClosingBalance,
			&period.FinanceCharge,
			&entries,
			&period.ClosedAt,
		); err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to scan period").WithDetails(err.Error())
		}

		if err := json.Unmarshal(entries, &period.Entries); err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to decode archived entries").WithDetails(err.Error())
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to read periods").WithDetails(err.Error())
	}

	return periods, nil
}
