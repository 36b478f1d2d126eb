package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
)

const entryColumns = `id, account_id, period_number, sequence, day_offset, kind, amount, finance_charge_paid, created_at`

type entryRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewEntryRepository(db SQLExecutor, logger *slog.Logger) domain.TransactionRepository {
	return &entryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *entryRepository) AppendEntry(ctx context.Context, entry *domain.TransactionEntry) error {
	query := `
		INSERT INTO transaction_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		entry.ID,
		entry.AccountID,
		entry.PeriodNumber,
		entry.Sequence,
		entry.DayOffset,
		string(entry.Kind),
		entry.Amount.String(),
		entry.FinanceChargePaid.String(),
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to append transaction entry",
			"account_id", entry.AccountID,
			"day", entry.DayOffset,
			"amount", entry.Amount,
			"error", err)
		return errors.NewAppError(errors.InternalError, "failed to append transaction entry").WithDetails(err.Error())
	}

	r.logger.Info("Transaction entry appended", "entry_id", entry.ID, "account_id", entry.AccountID)
	return nil
}

func (r *entryRepository) ListEntries(ctx context.Context, accountID uuid.UUID) ([]domain.TransactionEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM transaction_entries
		WHERE account_id = $1
		ORDER BY day_offset, sequence
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		r.logger.Error("Failed to list transaction entries", "account_id", accountID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to list transaction entries").WithDetails(err.Error())
	}
	defer rows.Close()

	var entries []domain.TransactionEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to read transaction entries").WithDetails(err.Error())
	}

	return entries, nil
}

func (r *entryRepository) LastEntry(ctx context.Context, accountID uuid.UUID) (*domain.TransactionEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM transaction_entries
		WHERE account_id = $1
		ORDER BY day_offset DESC, sequence DESC
		LIMIT 1
	`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, accountID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get last transaction entry", "account_id", accountID, "error", err)
		return nil, err
	}
	return entry, nil
}

func (r *entryRepository) ClearEntries(ctx context.Context, accountID uuid.UUID) error {
	query := `DELETE FROM transaction_entries WHERE account_id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		r.logger.Error("Failed to clear transaction entries", "account_id", accountID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to clear transaction entries").WithDetails(err.Error())
	}

	cleared, _ := result.RowsAffected()
	r.logger.Info("Transaction entries cleared", "account_id", accountID, "count", cleared)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry returns sql.ErrNoRows unchanged so callers can tell an empty
// log apart from a failure.
func scanEntry(row rowScanner) (*domain.TransactionEntry, error) {
	var entry domain.TransactionEntry
	var kind string

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.PeriodNumber,
		&entry.Sequence,
		&entry.DayOffset,
		&kind,
		&entry.Amount,
		&entry.FinanceChargePaid,
		&entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to scan transaction entry").WithDetails(err.Error())
	}

	entry.Kind = domain.EntryKind(kind)
	return &entry, nil
}
