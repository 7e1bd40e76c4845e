package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
)

const (
	MaxAccountIDLength = 40
	MaxHolderLength    = 150
)

type CreateAccountRequest struct {
	AccountID      string `json:"accountId"`
	Holder         string `json:"holder"`
	AccountType    string `json:"accountType"`
	InitialBalance string `json:"initialBalance,omitempty"`
	Status         string `json:"status,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	accountID := strings.TrimSpace(r.AccountID)
	if accountID == "" {
		errs = append(errs, "accountId is required")
	} else if utf8.RuneCountInString(accountID) > MaxAccountIDLength {
		errs = append(errs, "accountId must be at most 40 characters")
	}

	holder := strings.TrimSpace(r.Holder)
	if holder == "" {
		errs = append(errs, "holder is required")
	} else if utf8.RuneCountInString(holder) > MaxHolderLength {
		errs = append(errs, "holder must be at most 150 characters")
	}

	if _, err := domain.ParseAccountType(r.AccountType); err != nil {
		errs = append(errs, err.Error())
	}

	if strings.TrimSpace(r.Status) != "" {
		if _, err := domain.ParseAccountStatus(r.Status); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	AccountID   string `json:"accountId"`
	Holder      string `json:"holder"`
	AccountType string `json:"accountType"`
	Balance     string `json:"balance"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type MoneyOperationRequest struct {
	Amount string `json:"amount"`
}

type BalanceResponse struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

func (r ChangeStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return errors.New("status is required")
	}
	_, err := domain.ParseAccountStatus(r.Status)
	return err
}

type DeleteAccountResponse struct {
	AccountID           string `json:"accountId"`
	TransactionsRemoved int64  `json:"transactionsRemoved"`
}
