package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository keeps accounts and their transaction log in process memory.
// Units of work serialise on per-account mutexes and stage their writes until
// fn succeeds, so a failed operation leaves no trace.
type LedgerRepository struct {
	mu       sync.RWMutex
	locks    map[string]*accountLock
	accounts map[string]domain.Account
	entries  map[string][]domain.Transaction
	sequence atomic.Int64
	now      func() time.Time
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		locks:    make(map[string]*accountLock),
		accounts: make(map[string]domain.Account),
		entries:  make(map[string][]domain.Transaction),
		now:      time.Now,
	}
}

func (r *LedgerRepository) WithinTx(ctx context.Context, accountIDs []string, fn func(tx repo_interfaces.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ids := sortedUnique(accountIDs)
	for _, id := range ids {
		lock := r.acquire(id)
		defer r.release(id, lock)
	}

	tx := newStagedTx(r, ids)
	if err := fn(tx); err != nil {
		return err
	}

	r.commit(tx)
	return nil
}

func (r *LedgerRepository) GetAccount(_ context.Context, accountID string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

func (r *LedgerRepository) ListAccounts(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	accounts := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	r.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
		}
		return accounts[i].AccountID > accounts[j].AccountID
	})
	return accounts, nil
}

func (r *LedgerRepository) ListTransactions(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[accountID]
	out := make([]domain.Transaction, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

// accountLock is dropped from the table once nobody holds or waits for it, so
// ids of unknown or deleted accounts do not accumulate.
type accountLock struct {
	mu   sync.Mutex
	refs int
}

func (r *LedgerRepository) acquire(accountID string) *accountLock {
	r.mu.Lock()
	lock, ok := r.locks[accountID]
	if !ok {
		lock = &accountLock{}
		r.locks[accountID] = lock
	}
	lock.refs++
	r.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (r *LedgerRepository) release(accountID string, lock *accountLock) {
	lock.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(r.locks, accountID)
	}
}

func (r *LedgerRepository) lockCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.locks)
}

func (r *LedgerRepository) lookup(accountID string) (domain.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	return account, ok
}

func (r *LedgerRepository) countEntries(accountID string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.entries[accountID]))
}

func (r *LedgerRepository) commit(tx *stagedTx) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range tx.deleted {
		delete(r.accounts, id)
		delete(r.entries, id)
	}
	for id, account := range tx.accounts {
		r.accounts[id] = account
	}
	for _, entry := range tx.entries {
		if _, gone := tx.deleted[entry.AccountID]; gone {
			continue
		}
		r.entries[entry.AccountID] = append(r.entries[entry.AccountID], entry)
	}
}

type stagedTx struct {
	repo     *LedgerRepository
	held     map[string]struct{}
	accounts map[string]domain.Account
	deleted  map[string]struct{}
	entries  []domain.Transaction
}

func newStagedTx(repo *LedgerRepository, ids []string) *stagedTx {
	held := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		held[id] = struct{}{}
	}
	return &stagedTx{
		repo:     repo,
		held:     held,
		accounts: make(map[string]domain.Account),
		deleted:  make(map[string]struct{}),
	}
}

func (t *stagedTx) GetAccount(_ context.Context, accountID string) (domain.Account, error) {
	if err := t.checkHeld(accountID); err != nil {
		return domain.Account{}, err
	}
	account, ok := t.current(accountID)
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

func (t *stagedTx) InsertAccount(_ context.Context, account domain.Account) (domain.Account, error) {
	if err := t.checkHeld(account.AccountID); err != nil {
		return domain.Account{}, err
	}
	if _, ok := t.current(account.AccountID); ok {
		return domain.Account{}, domain.ErrDuplicateAccount
	}

	account.CreatedAt = t.repo.now().UTC()
	delete(t.deleted, account.AccountID)
	t.accounts[account.AccountID] = account
	return account, nil
}

func (t *stagedTx) UpdateBalance(_ context.Context, accountID string, balance decimal.Decimal) error {
	if err := t.checkHeld(accountID); err != nil {
		return err
	}
	account, ok := t.current(accountID)
	if !ok {
		return domain.ErrNotFound
	}
	if balance.IsNegative() {
		return fmt.Errorf("balance of %s cannot be negative", accountID)
	}
	account.Balance = balance
	t.accounts[accountID] = account
	return nil
}

func (t *stagedTx) UpdateStatus(_ context.Context, accountID string, status domain.AccountStatus) error {
	if err := t.checkHeld(accountID); err != nil {
		return err
	}
	account, ok := t.current(accountID)
	if !ok {
		return domain.ErrNotFound
	}
	account.Status = status
	t.accounts[accountID] = account
	return nil
}

func (t *stagedTx) DeleteAccount(_ context.Context, accountID string) (int64, error) {
	if err := t.checkHeld(accountID); err != nil {
		return 0, err
	}
	if _, ok := t.current(accountID); !ok {
		return 0, domain.ErrNotFound
	}

	removed := t.repo.countEntries(accountID)
	kept := t.entries[:0]
	for _, entry := range t.entries {
		if entry.AccountID == accountID {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	t.entries = kept

	delete(t.accounts, accountID)
	t.deleted[accountID] = struct{}{}
	return removed, nil
}

func (t *stagedTx) AppendTransaction(_ context.Context, entry domain.Transaction) (domain.Transaction, error) {
	if err := t.checkHeld(entry.AccountID); err != nil {
		return domain.Transaction{}, err
	}
	if _, ok := t.current(entry.AccountID); !ok {
		return domain.Transaction{}, domain.ErrNotFound
	}

	entry.Sequence = t.repo.sequence.Add(1)
	entry.CreatedAt = t.repo.now().UTC()
	t.entries = append(t.entries, entry)
	return entry, nil
}

func (t *stagedTx) current(accountID string) (domain.Account, bool) {
	if _, gone := t.deleted[accountID]; gone {
		return domain.Account{}, false
	}
	if account, ok := t.accounts[accountID]; ok {
		return account, true
	}
	return t.repo.lookup(accountID)
}

func (t *stagedTx) checkHeld(accountID string) error {
	if _, ok := t.held[accountID]; !ok {
		return fmt.Errorf("account %q is not held by this unit of work", accountID)
	}
	return nil
}

func sortedUnique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
