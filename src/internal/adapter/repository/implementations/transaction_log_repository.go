package implementations

import (
	"context"
	"fmt"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
)

func appendTransaction(ctx context.Context, q queryer, entry domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction log append", logger.Fields{
		"accountId":        entry.AccountID,
		"action":           entry.Kind,
		"amount":           entry.Amount,
		"resultingBalance": entry.ResultingBalance,
	})

	const query = `
INSERT INTO transactions (
	account_id,
	action,
	amount,
	resulting_balance,
	remarks
) VALUES ($1, $2, $3, $4, $5)
RETURNING sequence, created_at`

	if err := q.QueryRowContext(
		ctx,
		query,
		entry.AccountID,
		entry.Kind,
		entry.Amount,
		entry.ResultingBalance,
		entry.Remark,
	).Scan(&entry.Sequence, &entry.CreatedAt); err != nil {
		logger.Error("transaction log append failed", err, logger.Fields{
			"accountId": entry.AccountID,
			"action":    entry.Kind,
		})
		return domain.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	logger.Info("transaction log append success", logger.Fields{
		"sequence":  entry.Sequence,
		"accountId": entry.AccountID,
	})
	return entry, nil
}

func listTransactions(ctx context.Context, q queryer, accountID string) ([]domain.Transaction, error) {
	const query = `
SELECT sequence, account_id, action, amount, resulting_balance, remarks, created_at
FROM transactions
WHERE account_id = $1
ORDER BY sequence DESC`

	rows, err := q.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transaction log list failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Transaction, 0)
	for rows.Next() {
		var entry domain.Transaction
		if err := rows.Scan(
			&entry.Sequence,
			&entry.AccountID,
			&entry.Kind,
			&entry.Amount,
			&entry.ResultingBalance,
			&entry.Remark,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	logger.Info("transaction log list success", logger.Fields{
		"accountId": accountID,
		"count":     len(entries),
	})
	return entries, nil
}
