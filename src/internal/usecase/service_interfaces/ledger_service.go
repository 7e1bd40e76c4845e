package service_interfaces

import (
	"context"
	"io"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
)

type LedgerService interface {
	OpenAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	ListTransactions(ctx context.Context, accountID string) (commons.Response[[]models.TransactionResponse], error)
	Deposit(ctx context.Context, accountID string, req models.MoneyOperationRequest) (commons.Response[models.BalanceResponse], error)
	Withdraw(ctx context.Context, accountID string, req models.MoneyOperationRequest) (commons.Response[models.BalanceResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	ChangeStatus(ctx context.Context, accountID string, req models.ChangeStatusRequest) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, accountID string) (commons.Response[models.DeleteAccountResponse], error)
}

type ExportService interface {
	ExportAccounts(ctx context.Context, w io.Writer) (int, error)
}
