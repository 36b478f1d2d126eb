// Package memory is the in-process implementation of domain.Store. Each
// account owns its own log and period archive, indexed by account id.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]domain.Account
	logs     map[uuid.UUID][]domain.TransactionEntry
	periods  map[uuid.UUID][]domain.PeriodClose
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]domain.Account),
		logs:     make(map[uuid.UUID][]domain.TransactionEntry),
		periods:  make(map[uuid.UUID][]domain.PeriodClose),
	}
}

func (s *Store) Accounts() domain.AccountRepository         { return &repo{store: s} }
func (s *Store) Transactions() domain.TransactionRepository { return &repo{store: s} }
func (s *Store) Periods() domain.PeriodRepository           { return &repo{store: s} }

// WithTransaction runs fn against a view that journals every write. If fn
// fails the journal is replayed backwards and the store is left as it was.
// Isolation between concurrent transactions on the same account is the
// caller's job.
func (s *Store) WithTransaction(ctx context.Context, fn func(domain.Store) error) error {
	tx := &txStore{store: s, journal: &journal{}}
	if err := fn(tx); err != nil {
		s.mu.Lock()
		tx.journal.rollback()
		s.mu.Unlock()
		return err
	}
	return nil
}

type txStore struct {
	store   *Store
	journal *journal
}

func (t *txStore) Accounts() domain.AccountRepository {
	return &repo{store: t.store, journal: t.journal}
}

func (t *txStore) Transactions() domain.TransactionRepository {
	return &repo{store: t.store, journal: t.journal}
}

func (t *txStore) Periods() domain.PeriodRepository {
	return &repo{store: t.store, journal: t.journal}
}

// WithTransaction joins the surrounding transaction.
func (t *txStore) WithTransaction(ctx context.Context, fn func(domain.Store) error) error {
	return fn(t)
}

type journal struct {
	undo []func()
}

func (j *journal) record(fn func()) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

// rollback must be called with the store lock held.
func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// repo implements the account, transaction and period repositories. journal
// is nil outside a transaction.
type repo struct {
	store   *Store
	journal *journal
}

func (r *repo) CreateAccount(ctx context.Context, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return errors.ErrDuplicateAccount
	}
	id := account.ID
	s.accounts[id] = *account
	r.journal.record(func() { delete(s.accounts, id) })
	return nil
}

func (r *repo) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return &account, nil
}

// GetAccountForUpdate is a plain read; the ledger service already holds the
// account lock.
func (r *repo) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.GetAccount(ctx, id)
}

func (r *repo) UpdateAccount(ctx context.Context, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.accounts[account.ID]
	if !ok {
		return errors.ErrAccountNotFound
	}
	s.accounts[account.ID] = *account
	r.journal.record(func() { s.accounts[prev.ID] = prev })
	return nil
}

func (r *repo) AppendEntry(ctx context.Context, entry *domain.TransactionEntry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[entry.AccountID]; !ok {
		return errors.ErrAccountNotFound
	}
	id := entry.AccountID
	prev := s.logs[id]
	// full slice expression so the rollback copy never shares a backing array
	s.logs[id] = append(prev[:len(prev):len(prev)], *entry)
	r.journal.record(func() { s.logs[id] = prev })
	return nil
}

func (r *repo) ListEntries(ctx context.Context, accountID uuid.UUID) ([]domain.TransactionEntry, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[accountID]; !ok {
		return nil, errors.ErrAccountNotFound
	}
	entries := slices.Clone(s.logs[accountID])
	slices.SortStableFunc(entries, compareEntries)
	return entries, nil
}

func (r *repo) LastEntry(ctx context.Context, accountID uuid.UUID) (*domain.TransactionEntry, error) {
	entries, err := r.ListEntries(ctx, accountID)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	last := entries[len(entries)-1]
	return &last, nil
}

func (r *repo) ClearEntries(ctx context.Context, accountID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.logs[accountID]
	if !ok {
		return nil
	}
	delete(s.logs, accountID)
	r.journal.record(func() { s.logs[accountID] = prev })
	return nil
}

func (r *repo) SavePeriodClose(ctx context.Context, period *domain.PeriodClose) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[period.AccountID]; !ok {
		return errors.ErrAccountNotFound
	}
	archived := *period
	archived.Entries = slices.Clone(period.Entries)

	id := period.AccountID
	prev := s.periods[id]
	s.periods[id] = append(prev[:len(prev):len(prev)], archived)
	r.journal.record(func() { s.periods[id] = prev })
	return nil
}

func (r *repo) ListPeriodCloses(ctx context.Context, accountID uuid.UUID) ([]domain.PeriodClose, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[accountID]; !ok {
		return nil, errors.ErrAccountNotFound
	}
	periods := make([]domain.PeriodClose, 0, len(s.periods[accountID]))
	for _, p := range s.periods[accountID] {
		p.Entries = slices.Clone(p.Entries)
		periods = append(periods, p)
	}
	return periods, nil
}

func compareEntries(a, b domain.TransactionEntry) int {
	if c := cmp.Compare(a.DayOffset, b.DayOffset); c != 0 {
		return c
	}
	return cmp.Compare(a.Sequence, b.Sequence)
}

var (
	_ domain.Store                 = (*Store)(nil)
	_ domain.Store                 = (*txStore)(nil)
	_ domain.AccountRepository     = (*repo)(nil)
	_ domain.TransactionRepository = (*repo)(nil)
	_ domain.PeriodRepository      = (*repo)(nil)
)
