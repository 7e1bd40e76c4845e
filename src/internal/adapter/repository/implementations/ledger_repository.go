package implementations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/lib/pq"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/shopspring/decimal"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// WithinTx runs fn inside one database transaction. The rows of accountIDs are
// locked FOR UPDATE in ascending id order before fn runs, which serialises
// concurrent operations on the same account and keeps two opposing transfers
// from deadlocking. Once the locks are requested the work is not cancelled.
func (r *LedgerRepository) WithinTx(ctx context.Context, accountIDs []string, fn func(tx repo_interfaces.LedgerTx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	ids := sortedUnique(accountIDs)
	logger.Info("ledger repository begin unit of work", logger.Fields{
		"accountIds": ids,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin tx failed", err, nil)
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockAccounts(ctx, tx, ids); err != nil {
		return err
	}

	if err = fn(&ledgerTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit tx failed", err, logger.Fields{
			"accountIds": ids,
		})
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	logger.Info("ledger repository commit success", logger.Fields{
		"accountIds": ids,
	})
	return nil
}

func (r *LedgerRepository) GetAccount(ctx context.Context, accountID string) (domain.Account, error) {
	return getAccount(ctx, r.db, accountID)
}

func (r *LedgerRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return listAccounts(ctx, r.db)
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return listTransactions(ctx, r.db, accountID)
}

// lockAccounts takes row locks in the order the rows are returned. Ids that
// do not exist yet lock nothing; inserts race on the primary key instead.
func lockAccounts(ctx context.Context, tx *sql.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `
SELECT account_id
FROM accounts
WHERE account_id = ANY($1)
ORDER BY account_id
FOR UPDATE`

	rows, err := tx.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.Error("ledger repository lock accounts failed", err, logger.Fields{
			"accountIds": ids,
		})
		return fmt.Errorf("lock accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan locked account: %w", err)
		}
	}
	return rows.Err()
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

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) GetAccount(ctx context.Context, accountID string) (domain.Account, error) {
	return getAccount(ctx, t.tx, accountID)
}

func (t *ledgerTx) InsertAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	return insertAccount(ctx, t.tx, account)
}

func (t *ledgerTx) UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	return updateBalance(ctx, t.tx, accountID, balance)
}

func (t *ledgerTx) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus) error {
	return updateStatus(ctx, t.tx, accountID, status)
}

func (t *ledgerTx) DeleteAccount(ctx context.Context, accountID string) (int64, error) {
	return deleteAccount(ctx, t.tx, accountID)
}

func (t *ledgerTx) AppendTransaction(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	return appendTransaction(ctx, t.tx, entry)
}
