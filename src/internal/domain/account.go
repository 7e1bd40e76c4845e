package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "Active"
	AccountStatusDormant AccountStatus = "Dormant"
	AccountStatusClosed  AccountStatus = "Closed"
)

type AccountType string

const (
	AccountTypeSavings      AccountType = "Savings"
	AccountTypeCurrent      AccountType = "Current"
	AccountTypeFixedDeposit AccountType = "Fixed Deposit"
)

// BalanceScale is the number of fraction digits kept for every money column.
const BalanceScale = 2

type Account struct {
	AccountID string
	Holder    string
	Type      AccountType
	Balance   decimal.Decimal
	Status    AccountStatus
	CreatedAt time.Time
}

func (a Account) IsClosed() bool {
	return a.Status == AccountStatusClosed
}

// ParseAccountStatus accepts any casing of Active, Dormant or Closed.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return AccountStatusActive, nil
	case "dormant":
		return AccountStatusDormant, nil
	case "closed":
		return AccountStatusClosed, nil
	}
	return "", fmt.Errorf("status must be one of Active, Dormant, Closed")
}

func ParseAccountType(raw string) (AccountType, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	switch normalized {
	case "savings":
		return AccountTypeSavings, nil
	case "current":
		return AccountTypeCurrent, nil
	case "fixed deposit", "fixed_deposit", "fixed-deposit", "fd":
		return AccountTypeFixedDeposit, nil
	}
	return "", fmt.Errorf("accountType must be one of Savings, Current, Fixed Deposit")
}
