package domain

import "context"

// Store groups the repositories and runs a function atomically against them.
// If fn returns an error none of its writes are kept.
type Store interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Periods() PeriodRepository
	WithTransaction(ctx context.Context, fn func(Store) error) error
}
