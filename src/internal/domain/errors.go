package domain

import "errors"

var (
	ErrNotFound           = errors.New("Account not found")
	ErrAccountClosed      = errors.New("Account closed")
	ErrInsufficientFunds  = errors.New("Insufficient funds")
	ErrDuplicateAccount   = errors.New("Account already exists")
	ErrInvalidAmount      = errors.New("Invalid amount")
	ErrSameAccount        = errors.New("Source and destination accounts are the same")
	ErrDuplicateUsername  = errors.New("Username already exists")
	ErrCredentialNotFound = errors.New("Credential not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrBillNotFound       = errors.New("Bill not found")
	ErrInvalidExpression  = errors.New("Invalid expression")
)

type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindAccountClosed      ErrorKind = "ACCOUNT_CLOSED"
	KindInsufficientFunds  ErrorKind = "INSUFFICIENT_FUNDS"
	KindDuplicateAccount   ErrorKind = "DUPLICATE_ACCOUNT"
	KindInvalidAmount      ErrorKind = "INVALID_AMOUNT"
	KindSameAccount        ErrorKind = "SAME_ACCOUNT"
	KindDuplicateUsername  ErrorKind = "DUPLICATE_USERNAME"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindBillNotFound       ErrorKind = "BILL_NOT_FOUND"
	KindInvalidExpression  ErrorKind = "INVALID_EXPRESSION"
	KindValidation         ErrorKind = "VALIDATION_FAILED"
	KindInternal           ErrorKind = "INTERNAL"
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrNotFound, KindNotFound},
	{ErrCredentialNotFound, KindNotFound},
	{ErrAccountClosed, KindAccountClosed},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrDuplicateAccount, KindDuplicateAccount},
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrSameAccount, KindSameAccount},
	{ErrDuplicateUsername, KindDuplicateUsername},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrBillNotFound, KindBillNotFound},
	{ErrInvalidExpression, KindInvalidExpression},
}

// KindOf maps an error chain onto the failure kind reported to callers.
// Errors that carry no domain sentinel are infrastructure failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
