package services

import (
	"context"
	"strings"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/shopspring/decimal"
)

const (
	remarkInitialDeposit = "Initial Deposit"
	remarkDeposit        = "Money Deposited"
	remarkWithdrawal     = "Money Withdrawn"
)

type LedgerService struct {
	ledgerRepo        repo_interfaces.LedgerRepository
	allowSelfTransfer bool
}

func NewLedgerService(ledgerRepo repo_interfaces.LedgerRepository, allowSelfTransfer bool) *LedgerService {
	return &LedgerService{
		ledgerRepo:        ledgerRepo,
		allowSelfTransfer: allowSelfTransfer,
	}
}

func (s *LedgerService) OpenAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("ledger service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service open account validation failed", err, nil)
		return commons.ValidationResponse[models.AccountResponse](err.Error()), err
	}

	balance, err := domain.ParseOpeningBalance(req.InitialBalance)
	if err != nil {
		logger.Error("ledger service open account invalid balance", err, nil)
		return commons.FailureResponse[models.AccountResponse](err, "failed to open account"), err
	}

	accountType, _ := domain.ParseAccountType(req.AccountType)
	status := domain.AccountStatusActive
	if strings.TrimSpace(req.Status) != "" {
		status, _ = domain.ParseAccountStatus(req.Status)
	}

	account := domain.Account{
		AccountID: strings.TrimSpace(req.AccountID),
		Holder:    strings.TrimSpace(req.Holder),
		Type:      accountType,
		Balance:   balance,
		Status:    status,
	}

	var created domain.Account
	err = s.ledgerRepo.WithinTx(ctx, []string{account.AccountID}, func(tx repo_interfaces.LedgerTx) error {
		inserted, err := tx.InsertAccount(ctx, account)
		if err != nil {
			return err
		}
		if _, err := tx.AppendTransaction(ctx, domain.Transaction{
			AccountID:        inserted.AccountID,
			Kind:             domain.TransactionKindAccountCreated,
			Amount:           inserted.Balance,
			ResultingBalance: inserted.Balance,
			Remark:           remarkInitialDeposit,
		}); err != nil {
			return err
		}
		created = inserted
		return nil
	})
	if err != nil {
		logger.Error("ledger service open account failed", err, logger.Fields{
			"accountId": account.AccountID,
		})
		return commons.FailureResponse[models.AccountResponse](err, "failed to open account"), err
	}

	logger.Info("ledger service open account success", logger.Fields{
		"accountId": created.AccountID,
		"balance":   domain.FormatMoney(created.Balance),
	})
	return commons.SuccessResponse("account opened successfully", mapAccountToResponse(created)), nil
}

func (s *LedgerService) GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	accountID = strings.TrimSpace(accountID)
	logger.Info("ledger service get account request", logger.Fields{
		"accountId": accountID,
	})

	account, err := s.ledgerRepo.GetAccount(ctx, accountID)
	if err != nil {
		logger.Error("ledger service get account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.AccountResponse](err, "failed to get account"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *LedgerService) ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("ledger service list accounts request", nil)

	accounts, err := s.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("ledger service list accounts failed", err, nil)
		return commons.FailureResponse[[]models.AccountResponse](err, "failed to list accounts"), err
	}

	response := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, mapAccountToResponse(account))
	}

	logger.Info("ledger service list accounts success", logger.Fields{
		"count": len(response),
	})
	return commons.SuccessResponse("accounts fetched successfully", response), nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, accountID string) (commons.Response[[]models.TransactionResponse], error) {
	accountID = strings.TrimSpace(accountID)
	logger.Info("ledger service list transactions request", logger.Fields{
		"accountId": accountID,
	})

	entries, err := s.ledgerRepo.ListTransactions(ctx, accountID)
	if err != nil {
		logger.Error("ledger service list transactions failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[[]models.TransactionResponse](err, "failed to list transactions"), err
	}

	response := make([]models.TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, mapTransactionToResponse(entry))
	}
	return commons.SuccessResponse("transactions fetched successfully", response), nil
}

func (s *LedgerService) Deposit(ctx context.Context, accountID string, req models.MoneyOperationRequest) (commons.Response[models.BalanceResponse], error) {
	accountID = strings.TrimSpace(accountID)
	logger.Info("ledger service deposit request", logger.Fields{
		"accountId": accountID,
		"amount":    req.Amount,
	})

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		logger.Error("ledger service deposit invalid amount", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.BalanceResponse](err, "failed to deposit"), err
	}

	var newBalance decimal.Decimal
	err = s.ledgerRepo.WithinTx(ctx, []string{accountID}, func(tx repo_interfaces.LedgerTx) error {
		account, err := loadOpenAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}

		newBalance = account.Balance.Add(amount)
		if err := domain.ValidateBalance(newBalance); err != nil {
			return err
		}
		return post(ctx, tx, accountID, domain.TransactionKindDeposit, amount, newBalance, remarkDeposit)
	})
	if err != nil {
		logger.Error("ledger service deposit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.BalanceResponse](err, "failed to deposit"), err
	}

	logger.Info("ledger service deposit success", logger.Fields{
		"accountId": accountID,
		"balance":   domain.FormatMoney(newBalance),
	})
	return commons.SuccessResponse("deposit successful", models.BalanceResponse{
		AccountID: accountID,
		Balance:   domain.FormatMoney(newBalance),
	}), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, accountID string, req models.MoneyOperationRequest) (commons.Response[models.BalanceResponse], error) {
	accountID = strings.TrimSpace(accountID)
	logger.Info("ledger service withdraw request", logger.Fields{
		"accountId": accountID,
		"amount":    req.Amount,
	})

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		logger.Error("ledger service withdraw invalid amount", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.BalanceResponse](err, "failed to withdraw"), err
	}

	var newBalance decimal.Decimal
	err = s.ledgerRepo.WithinTx(ctx, []string{accountID}, func(tx repo_interfaces.LedgerTx) error {
		account, err := loadOpenAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		newBalance = account.Balance.Sub(amount)
		return post(ctx, tx, accountID, domain.TransactionKindWithdrawal, amount, newBalance, remarkWithdrawal)
	})
	if err != nil {
		logger.Error("ledger service withdraw failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.BalanceResponse](err, "failed to withdraw"), err
	}

	logger.Info("ledger service withdraw success", logger.Fields{
		"accountId": accountID,
		"balance":   domain.FormatMoney(newBalance),
	})
	return commons.SuccessResponse("withdrawal successful", models.BalanceResponse{
		AccountID: accountID,
		Balance:   domain.FormatMoney(newBalance),
	}), nil
}

// Transfer moves amount from the source to the destination. When both ids are
// equal and self transfers are allowed, the balance is left as it was and the
// Transfer Out entry records the intermediate balance.
func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service transfer validation failed", err, nil)
		return commons.ValidationResponse[models.TransferResponse](err.Error()), err
	}

	sourceID := strings.TrimSpace(req.SourceAccountID)
	destinationID := strings.TrimSpace(req.DestinationAccountID)

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		logger.Error("ledger service transfer invalid amount", err, nil)
		return commons.FailureResponse[models.TransferResponse](err, "failed to transfer"), err
	}
	if sourceID == destinationID && !s.allowSelfTransfer {
		err := domain.ErrSameAccount
		logger.Error("ledger service transfer rejected", err, logger.Fields{
			"accountId": sourceID,
		})
		return commons.FailureResponse[models.TransferResponse](err, "failed to transfer"), err
	}

	var sourceBalance, destinationBalance decimal.Decimal
	err = s.ledgerRepo.WithinTx(ctx, []string{sourceID, destinationID}, func(tx repo_interfaces.LedgerTx) error {
		// Both accounts must exist before either one's status is considered.
		source, err := tx.GetAccount(ctx, sourceID)
		if err != nil {
			return err
		}
		destination, err := tx.GetAccount(ctx, destinationID)
		if err != nil {
			return err
		}
		if source.IsClosed() || destination.IsClosed() {
			return domain.ErrAccountClosed
		}
		if source.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		sourceBalance = source.Balance.Sub(amount)
		if sourceID == destinationID {
			destinationBalance = sourceBalance.Add(amount)
		} else {
			destinationBalance = destination.Balance.Add(amount)
		}
		if err := domain.ValidateBalance(destinationBalance); err != nil {
			return err
		}

		if err := tx.UpdateBalance(ctx, sourceID, sourceBalance); err != nil {
			return err
		}
		if err := tx.UpdateBalance(ctx, destinationID, destinationBalance); err != nil {
			return err
		}
		if _, err := tx.AppendTransaction(ctx, domain.Transaction{
			AccountID:        sourceID,
			Kind:             domain.TransactionKindTransferOut,
			Amount:           amount,
			ResultingBalance: sourceBalance,
			Remark:           "To " + destinationID,
		}); err != nil {
			return err
		}
		_, err = tx.AppendTransaction(ctx, domain.Transaction{
			AccountID:        destinationID,
			Kind:             domain.TransactionKindTransferIn,
			Amount:           amount,
			ResultingBalance: destinationBalance,
			Remark:           "From " + sourceID,
		})
		return err
	})
	if err != nil {
		logger.Error("ledger service transfer failed", err, logger.Fields{
			"sourceAccountId":      sourceID,
			"destinationAccountId": destinationID,
		})
		return commons.FailureResponse[models.TransferResponse](err, "failed to transfer"), err
	}

	logger.Info("ledger service transfer success", logger.Fields{
		"sourceAccountId":      sourceID,
		"destinationAccountId": destinationID,
		"amount":               domain.FormatMoney(amount),
	})
	return commons.SuccessResponse("transfer successful", models.TransferResponse{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               domain.FormatMoney(amount),
		SourceBalance:        domain.FormatMoney(sourceBalance),
		DestinationBalance:   domain.FormatMoney(destinationBalance),
	}), nil
}

func (s *LedgerService) ChangeStatus(ctx context.Context, accountID string, req models.ChangeStatusRequest) (commons.Response[models.AccountResponse], error) {
	accountID = strings.TrimSpace(accountID)
	logger.Info("ledger service change status request", logger.Fields{
		"accountId": accountID,
		"status":    req.Status,
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service change status validation failed", err, nil)
		return commons.ValidationResponse[models.AccountResponse](err.Error()), err
	}
	status, _ := domain.ParseAccountStatus(req.Status)

	var updated domain.Account
	err := s.ledgerRepo.WithinTx(ctx, []string{accountID}, func(tx repo_interfaces.LedgerTx) error {
		account, err := tx.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, accountID, status); err != nil {
			return err
		}
		account.Status = status
		updated = account
		return nil
	})
	if err != nil {
		logger.Error("ledger service change status failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.AccountResponse](err, "failed to change status"), err
	}

	logger.Info("ledger service change status success", logger.Fields{
		"accountId": accountID,
		"status":    status,
	})
	return commons.SuccessResponse("status updated successfully", mapAccountToResponse(updated)), nil
}

func (s *LedgerService) DeleteAccount(ctx context.Context, accountID string) (commons.Response[models.DeleteAccountResponse], error) {
	accountID = strings.TrimSpace(accountID)
	logger.Info("ledger service delete account request", logger.Fields{
		"accountId": accountID,
	})

	var removed int64
	err := s.ledgerRepo.WithinTx(ctx, []string{accountID}, func(tx repo_interfaces.LedgerTx) error {
		var err error
		removed, err = tx.DeleteAccount(ctx, accountID)
		return err
	})
	if err != nil {
		logger.Error("ledger service delete account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.FailureResponse[models.DeleteAccountResponse](err, "failed to delete account"), err
	}

	logger.Info("ledger service delete account success", logger.Fields{
		"accountId":           accountID,
		"transactionsRemoved": removed,
	})
	return commons.SuccessResponse("account deleted successfully", models.DeleteAccountResponse{
		AccountID:           accountID,
		TransactionsRemoved: removed,
	}), nil
}

func loadOpenAccount(ctx context.Context, tx repo_interfaces.LedgerTx, accountID string) (domain.Account, error) {
	account, err := tx.GetAccount(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}
	if account.IsClosed() {
		return domain.Account{}, domain.ErrAccountClosed
	}
	return account, nil
}

func post(ctx context.Context, tx repo_interfaces.LedgerTx, accountID string, kind domain.TransactionKind, amount decimal.Decimal, newBalance decimal.Decimal, remark string) error {
	if err := tx.UpdateBalance(ctx, accountID, newBalance); err != nil {
		return err
	}
	_, err := tx.AppendTransaction(ctx, domain.Transaction{
		AccountID:        accountID,
		Kind:             kind,
		Amount:           amount,
		ResultingBalance: newBalance,
		Remark:           remark,
	})
	return err
}
