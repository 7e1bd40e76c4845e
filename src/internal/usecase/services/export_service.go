package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
)

var exportHeader = []string{"Account ID", "Holder", "Type", "Balance", "Status", "Created"}

type ExportService struct {
	ledgerRepo repo_interfaces.LedgerRepository
}

func NewExportService(ledgerRepo repo_interfaces.LedgerRepository) *ExportService {
	return &ExportService{ledgerRepo: ledgerRepo}
}

// ExportAccounts writes every account as CSV, header first, in list order.
// It returns the number of account rows written.
func (s *ExportService) ExportAccounts(ctx context.Context, w io.Writer) (int, error) {
	logger.Info("export service export accounts request", nil)

	accounts, err := s.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("export service list accounts failed", err, nil)
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, account := range accounts {
		if err := writer.Write(exportRow(account)); err != nil {
			return 0, fmt.Errorf("write export row %q: %w", account.AccountID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error("export service flush failed", err, nil)
		return 0, fmt.Errorf("flush export: %w", err)
	}

	logger.Info("export service export accounts success", logger.Fields{
		"count": len(accounts),
	})
	return len(accounts), nil
}

func exportRow(account domain.Account) []string {
	return []string{
		account.AccountID,
		account.Holder,
		string(account.Type),
		domain.FormatMoney(account.Balance),
		string(account.Status),
		account.CreatedAt.UTC().Format(time.RFC3339),
	}
}
