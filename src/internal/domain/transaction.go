package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindAccountCreated TransactionKind = "Account Created"
	TransactionKindDeposit        TransactionKind = "Deposit"
	TransactionKindWithdrawal     TransactionKind = "Withdrawal"
	TransactionKindTransferOut    TransactionKind = "Transfer Out"
	TransactionKindTransferIn     TransactionKind = "Transfer In"
)

// Transaction is one immutable ledger entry. ResultingBalance is the account
// balance right after the entry was applied.
type Transaction struct {
	Sequence         int64
	AccountID        string
	Kind             TransactionKind
	Amount           decimal.Decimal
	ResultingBalance decimal.Decimal
	Remark           string
	CreatedAt        time.Time
}

// SignedAmount returns the effect of the entry on the account balance.
// Account Created entries carry the opening balance and count as a credit.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Kind {
	case TransactionKindWithdrawal, TransactionKindTransferOut:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}
