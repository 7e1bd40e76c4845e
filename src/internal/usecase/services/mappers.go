package services

import (
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
)

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		AccountID:   account.AccountID,
		Holder:      account.Holder,
		AccountType: string(account.Type),
		Balance:     domain.FormatMoney(account.Balance),
		Status:      string(account.Status),
		CreatedAt:   account.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapTransactionToResponse(entry domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		Sequence:         entry.Sequence,
		AccountID:        entry.AccountID,
		Action:           string(entry.Kind),
		Amount:           domain.FormatMoney(entry.Amount),
		ResultingBalance: domain.FormatMoney(entry.ResultingBalance),
		Remarks:          entry.Remark,
		CreatedAt:        entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}
