package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

// Store holds in-memory state for the repository ports, used by tests and
// demo mode. Units of work are serialized: Begin blocks until the
// previous transaction commits or rolls back, which gives the same
// effective isolation as row locks. Begin snapshots all state so Rollback
// can restore it.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	accounts       map[string]*domain.Account // by ID
	accountNumbers map[string]string          // account number -> ID
	merchants      map[string]*domain.Merchant
	transactions   map[string]*domain.Transaction
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:       make(map[string]*domain.Account),
		accountNumbers: make(map[string]string),
		merchants:      make(map[string]*domain.Merchant),
		transactions:   make(map[string]*domain.Transaction),
	}
}

// Tx is an in-memory unit of work.
type Tx struct {
	store *Store
	snap  snapshot
	done  bool
}

type snapshot struct {
	accounts       map[string]*domain.Account
	accountNumbers map[string]string
	merchants      map[string]*domain.Merchant
	transactions   map[string]*domain.Transaction
}

// Begin starts a unit of work, blocking until it is exclusive.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.txMu.Lock()

	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	return &Tx{store: s, snap: snap}, nil
}

func (s *Store) snapshotLocked() snapshot {
	snap := snapshot{
		accounts:       make(map[string]*domain.Account, len(s.accounts)),
		accountNumbers: make(map[string]string, len(s.accountNumbers)),
		merchants:      make(map[string]*domain.Merchant, len(s.merchants)),
		transactions:   make(map[string]*domain.Transaction, len(s.transactions)),
	}
	for id, account := range s.accounts {
		copied := *account
		snap.accounts[id] = &copied
	}
	for number, id := range s.accountNumbers {
		snap.accountNumbers[number] = id
	}
	for code, merchant := range s.merchants {
		copied := *merchant
		snap.merchants[code] = &copied
	}
	for id, txn := range s.transactions {
		snap.transactions[id] = txn.Clone()
	}
	return snap
}

// Commit finishes the unit of work, keeping all writes.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("memory: transaction already closed")
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

// Rollback restores the state captured at Begin. Rolling back after
// Commit is a no-op so deferred rollbacks stay harmless.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	t.store.accounts = t.snap.accounts
	t.store.accountNumbers = t.snap.accountNumbers
	t.store.merchants = t.snap.merchants
	t.store.transactions = t.snap.transactions
	t.store.mu.Unlock()

	t.store.txMu.Unlock()
	return nil
}

// openTx checks that tx is an open unit of work on this store.
func (s *Store) openTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, errors.New("memory: foreign transaction")
	}
	if t.done {
		return nil, errors.New("memory: transaction already closed")
	}
	return t, nil
}
