package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, holder, account_type, balance, status, created_at`

func insertAccount(ctx context.Context, q queryer, account domain.Account) (domain.Account, error) {
	logger.Info("account repository insert", logger.Fields{
		"accountId":   account.AccountID,
		"accountType": account.Type,
		"status":      account.Status,
	})

	const query = `
INSERT INTO accounts (
	account_id,
	holder,
	account_type,
	balance,
	status
) VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`

	if err := q.QueryRowContext(
		ctx,
		query,
		account.AccountID,
		account.Holder,
		account.Type,
		account.Balance,
		account.Status,
	).Scan(&account.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			logger.Info("account repository duplicate account", logger.Fields{
				"accountId": account.AccountID,
			})
			return domain.Account{}, domain.ErrDuplicateAccount
		}
		logger.Error("account repository insert failed", err, logger.Fields{
			"accountId": account.AccountID,
		})
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}

	logger.Info("account repository insert success", logger.Fields{
		"accountId": account.AccountID,
	})
	return account, nil
}

func getAccount(ctx context.Context, q queryer, accountID string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	var account domain.Account
	if err := scanAccount(q.QueryRowContext(ctx, query, accountID), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.Account{}, domain.ErrNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

func listAccounts(ctx context.Context, q queryer) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC, account_id DESC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		logger.Error("account repository list failed", err, nil)
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	logger.Info("account repository list success", logger.Fields{
		"count": len(accounts),
	})
	return accounts, nil
}

func updateBalance(ctx context.Context, q queryer, accountID string, balance decimal.Decimal) error {
	const query = `UPDATE accounts SET balance = $2 WHERE account_id = $1`

	if _, err := execRequiredRows(ctx, q, domain.ErrNotFound, query, accountID, balance); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("account repository update balance failed", err, logger.Fields{
				"accountId": accountID,
			})
		}
		return err
	}
	return nil
}

func updateStatus(ctx context.Context, q queryer, accountID string, status domain.AccountStatus) error {
	const query = `UPDATE accounts SET status = $2 WHERE account_id = $1`

	if _, err := execRequiredRows(ctx, q, domain.ErrNotFound, query, accountID, status); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("account repository update status failed", err, logger.Fields{
				"accountId": accountID,
				"status":    status,
			})
		}
		return err
	}
	return nil
}

// deleteAccount removes the account row; the transactions foreign key
// cascades. It reports how many log entries went with it.
func deleteAccount(ctx context.Context, q queryer, accountID string) (int64, error) {
	var removed int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM transactions WHERE account_id = $1`, accountID).Scan(&removed); err != nil {
		logger.Error("account repository count transactions failed", err, logger.Fields{
			"accountId": accountID,
		})
		return 0, fmt.Errorf("count account transactions: %w", err)
	}

	if _, err := execRequiredRows(ctx, q, domain.ErrNotFound, `DELETE FROM accounts WHERE account_id = $1`, accountID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("account repository delete failed", err, logger.Fields{
				"accountId": accountID,
			})
		}
		return 0, err
	}

	logger.Info("account repository delete success", logger.Fields{
		"accountId":           accountID,
		"transactionsRemoved": removed,
	})
	return removed, nil
}

func scanAccount(row rowScanner, account *domain.Account) error {
	return row.Scan(
		&account.AccountID,
		&account.Holder,
		&account.Type,
		&account.Balance,
		&account.Status,
		&account.CreatedAt,
	)
}
