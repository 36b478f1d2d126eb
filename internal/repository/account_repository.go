package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
)

const uniqueViolation = "23505"

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts
		(id, annual_rate, credit_limit, balance, accrued_finance_charges, period_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		account.ID,
		account.AnnualRate.String(),
		account.CreditLimit.String(),
		account.Balance.String(),
		account.AccruedFinanceCharges.String(),
		account.PeriodNumber,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Warn("Duplicate account creation attempt", "account_id", account.ID)
			return errors.ErrDuplicateAccount
		}
		r.logger.Error("Failed to create account", "account_id", account.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to create account").WithDetails(err.Error())
	}

	r.logger.Info("Account created successfully", "account_id", account.ID)
	return nil
}

func (r *accountRepository) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, annual_rate, credit_limit, balance, accrued_finance_charges, period_number, created_at, updated_at
		FROM accounts WHERE id = $1
	`

	return r.scanAccount(ctx, query, id)
}

func (r *accountRepository) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, annual_rate, credit_limit, balance, accrued_finance_charges, period_number, created_at, updated_at
		FROM accounts WHERE id = $1 FOR UPDATE
	`

	return r.scanAccount(ctx, query, id)
}

func (r *accountRepository) scanAccount(ctx context.Context, query string, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.AnnualRate,
		&account.CreditLimit,
		&account.Balance,
		&account.AccruedFinanceCharges,
		&account.PeriodNumber,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("Account not found", "account_id", id)
			return nil, errors.ErrAccountNotFound
		}
		r.logger.Error("Failed to get account", "account_id", id, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get account").WithDetails(err.Error())
	}

	return &account, nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $1, accrued_finance_charges = $2, period_number = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		account.Balance.String(),
		account.AccruedFinanceCharges.String(),
		account.PeriodNumber,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update account", "account_id", account.ID, "error", err)
		return errors.NewAppError(errors.InternalError, "failed to update account").WithDetails(err.Error())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAppError(errors.InternalError, "failed to get rows affected").WithDetails(err.Error())
	}

	if rowsAffected == 0 {
		r.logger.Warn("No account found to update", "account_id", account.ID)
		return errors.ErrAccountNotFound
	}

	r.logger.Info("Account updated",
		"account_id", account.ID,
		"balance", account.Balance,
		"accrued_finance_charges", account.AccruedFinanceCharges)
	return nil
}
