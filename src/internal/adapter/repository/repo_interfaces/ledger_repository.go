package repo_interfaces

import (
	"context"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is one unit of work over the account table and the transaction log.
// Nothing written through it is visible to other callers until WithinTx returns nil.
//
//go:generate mockgen -destination=mocks/mock_ledger_repository.go -package=mocks -source=ledger_repository.go
type LedgerTx interface {
	GetAccount(ctx context.Context, accountID string) (domain.Account, error)
	InsertAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	UpdateBalance(ctx context.Context, accountID string, balance decimal.Decimal) error
	UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus) error
	DeleteAccount(ctx context.Context, accountID string) (int64, error)
	AppendTransaction(ctx context.Context, entry domain.Transaction) (domain.Transaction, error)
}

type LedgerRepository interface {
	// WithinTx holds mutation rights on accountIDs, acquired in ascending id
	// order, for the duration of fn. A non-nil error from fn discards every write.
	WithinTx(ctx context.Context, accountIDs []string, fn func(tx LedgerTx) error) error
	GetAccount(ctx context.Context, accountID string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}
