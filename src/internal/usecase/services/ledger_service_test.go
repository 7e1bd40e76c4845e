package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/memory"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces/mocks"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func newLedger(t *testing.T) (*services.LedgerService, *memory.LedgerRepository) {
	t.Helper()
	repo := memory.NewLedgerRepository()
	return services.NewLedgerService(repo, true), repo
}

func mustOpen(t *testing.T, svc *services.LedgerService, id string, balance string) {
	t.Helper()
	resp, err := svc.OpenAccount(context.Background(), models.CreateAccountRequest{
		AccountID:      id,
		Holder:         "Holder " + id,
		AccountType:    "Savings",
		InitialBalance: balance,
	})
	if err != nil {
		t.Fatalf("open %s: %v", id, err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatalf("open %s: expected success, got %+v", id, resp)
	}
}

func balanceOf(t *testing.T, repo *memory.LedgerRepository, id string) decimal.Decimal {
	t.Helper()
	account, err := repo.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return account.Balance
}

func entriesOf(t *testing.T, repo *memory.LedgerRepository, id string) []domain.Transaction {
	t.Helper()
	entries, err := repo.ListTransactions(context.Background(), id)
	if err != nil {
		t.Fatalf("list %s: %v", id, err)
	}
	return entries
}

func assertBalance(t *testing.T, repo *memory.LedgerRepository, id string, want string) {
	t.Helper()
	if got := balanceOf(t, repo, id); !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s balance %s, got %s", id, want, got.StringFixed(2))
	}
}

// assertBalanceMatchesLog checks that the balance equals the opening balance
// plus the signed sum of every later entry.
func assertBalanceMatchesLog(t *testing.T, repo *memory.LedgerRepository, id string) {
	t.Helper()
	entries := entriesOf(t, repo, id)
	sum := decimal.Zero
	for _, entry := range entries {
		sum = sum.Add(entry.SignedAmount())
	}
	if got := balanceOf(t, repo, id); !got.Equal(sum) {
		t.Fatalf("expected %s balance %s to equal log sum %s", id, got, sum)
	}
	if len(entries) > 0 && !entries[0].ResultingBalance.Equal(sum) {
		t.Fatalf("expected latest resulting balance %s, got %s", sum, entries[0].ResultingBalance)
	}
}

func TestLedgerServiceConcreteScenario(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)

	mustOpen(t, svc, "A1", "1000.00")
	mustOpen(t, svc, "A2", "0")

	resp, err := svc.Deposit(ctx, "A1", models.MoneyOperationRequest{Amount: "500.00"})
	if err != nil || resp.Data.Balance != "1500.00" {
		t.Fatalf("expected deposit to reach 1500.00, got %+v (%v)", resp.Data, err)
	}

	withdraw, err := svc.Withdraw(ctx, "A1", models.MoneyOperationRequest{Amount: "2000.00"})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if withdraw.Success || withdraw.Code != domain.KindInsufficientFunds {
		t.Fatalf("expected INSUFFICIENT_FUNDS response, got %+v", withdraw)
	}
	assertBalance(t, repo, "A1", "1500.00")

	transfer, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A1", DestinationAccountID: "A2", Amount: "1500.00"})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if transfer.Data.SourceBalance != "0.00" || transfer.Data.DestinationBalance != "1500.00" {
		t.Fatalf("unexpected transfer balances %+v", transfer.Data)
	}

	assertBalance(t, repo, "A1", "0")
	assertBalance(t, repo, "A2", "1500")

	a1 := entriesOf(t, repo, "A1")
	wantA1 := []domain.TransactionKind{domain.TransactionKindTransferOut, domain.TransactionKindDeposit, domain.TransactionKindAccountCreated}
	if len(a1) != len(wantA1) {
		t.Fatalf("expected %d entries for A1, got %d", len(wantA1), len(a1))
	}
	for i, kind := range wantA1 {
		if a1[i].Kind != kind {
			t.Fatalf("entry %d: expected %s, got %s", i, kind, a1[i].Kind)
		}
	}
	if a1[0].Remark != "To A2" {
		t.Fatalf("expected transfer remark, got %q", a1[0].Remark)
	}

	a2 := entriesOf(t, repo, "A2")
	if len(a2) != 2 || a2[0].Kind != domain.TransactionKindTransferIn || a2[0].Remark != "From A1" {
		t.Fatalf("expected transfer in on A2, got %+v", a2)
	}
	if !a2[0].ResultingBalance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected A2 resulting balance 1500, got %s", a2[0].ResultingBalance)
	}

	assertBalanceMatchesLog(t, repo, "A1")
	assertBalanceMatchesLog(t, repo, "A2")
}

func TestLedgerServiceOpenAccount(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)

	resp, err := svc.OpenAccount(ctx, models.CreateAccountRequest{
		AccountID:      " A1 ",
		Holder:         "Asha",
		AccountType:    "fixed deposit",
		InitialBalance: "250.5",
		Status:         "dormant",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.AccountID != "A1" || resp.Data.Balance != "250.50" || resp.Data.AccountType != "Fixed Deposit" || resp.Data.Status != "Dormant" {
		t.Fatalf("unexpected account %+v", resp.Data)
	}

	entries := entriesOf(t, repo, "A1")
	if len(entries) != 1 || entries[0].Kind != domain.TransactionKindAccountCreated || entries[0].Remark != "Initial Deposit" {
		t.Fatalf("expected one creation entry, got %+v", entries)
	}

	dup, err := svc.OpenAccount(ctx, models.CreateAccountRequest{AccountID: "A1", Holder: "Other", AccountType: "Current"})
	if !errors.Is(err, domain.ErrDuplicateAccount) || dup.Code != domain.KindDuplicateAccount {
		t.Fatalf("expected duplicate account, got %+v (%v)", dup, err)
	}
	if len(entriesOf(t, repo, "A1")) != 1 {
		t.Fatal("expected duplicate open to write nothing")
	}
}

func TestLedgerServiceOpenAccountRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedger(t)

	resp, err := svc.OpenAccount(ctx, models.CreateAccountRequest{AccountType: "Savings"})
	if err == nil || resp.Code != domain.KindValidation {
		t.Fatalf("expected validation failure, got %+v", resp)
	}

	for _, balance := range []string{"-1", "abc", "1.005"} {
		resp, err := svc.OpenAccount(ctx, models.CreateAccountRequest{AccountID: "X", Holder: "X", AccountType: "Savings", InitialBalance: balance})
		if !errors.Is(err, domain.ErrInvalidAmount) || resp.Code != domain.KindInvalidAmount {
			t.Fatalf("balance %q: expected invalid amount, got %+v", balance, resp)
		}
	}
}

func TestLedgerServiceRejectsInvalidAmounts(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A1", "10")
	mustOpen(t, svc, "A2", "10")

	for _, amount := range []string{"0", "-5", "", "ten", "1.001"} {
		req := models.MoneyOperationRequest{Amount: amount}
		if _, err := svc.Deposit(ctx, "A1", req); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("deposit %q: expected invalid amount, got %v", amount, err)
		}
		if _, err := svc.Withdraw(ctx, "A1", req); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("withdraw %q: expected invalid amount, got %v", amount, err)
		}
		if _, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A1", DestinationAccountID: "A2", Amount: amount}); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("transfer %q: expected invalid amount, got %v", amount, err)
		}
	}

	if len(entriesOf(t, repo, "A1")) != 1 {
		t.Fatal("expected no entries from rejected amounts")
	}
}

func TestLedgerServiceDepositThenWithdrawRestoresBalance(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A1", "75.25")

	if _, err := svc.Deposit(ctx, "A1", models.MoneyOperationRequest{Amount: "19.99"}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	resp, err := svc.Withdraw(ctx, "A1", models.MoneyOperationRequest{Amount: "19.99"})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if resp.Data.Balance != "75.25" {
		t.Fatalf("expected 75.25, got %s", resp.Data.Balance)
	}
	if got := len(entriesOf(t, repo, "A1")); got != 3 {
		t.Fatalf("expected 3 entries, got %d", got)
	}
	assertBalanceMatchesLog(t, repo, "A1")
}

func TestLedgerServiceTransferRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "100")
	mustOpen(t, svc, "B", "40")

	for _, req := range []models.TransferRequest{
		{SourceAccountID: "A", DestinationAccountID: "B", Amount: "30"},
		{SourceAccountID: "B", DestinationAccountID: "A", Amount: "30"},
	} {
		if _, err := svc.Transfer(ctx, req); err != nil {
			t.Fatalf("transfer %+v: %v", req, err)
		}
	}

	assertBalance(t, repo, "A", "100")
	assertBalance(t, repo, "B", "40")
	if len(entriesOf(t, repo, "A")) != 3 || len(entriesOf(t, repo, "B")) != 3 {
		t.Fatal("expected two transfer entries per account")
	}
	assertBalanceMatchesLog(t, repo, "A")
	assertBalanceMatchesLog(t, repo, "B")
}

func TestLedgerServiceTransferFailures(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "10")
	mustOpen(t, svc, "B", "10")

	if _, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "Z", Amount: "1"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "B", Amount: "10.01"}); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	resp, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A"})
	if err == nil || resp.Code != domain.KindValidation {
		t.Fatalf("expected validation failure, got %+v", resp)
	}

	assertBalance(t, repo, "A", "10")
	assertBalance(t, repo, "B", "10")
	if len(entriesOf(t, repo, "A")) != 1 || len(entriesOf(t, repo, "B")) != 1 {
		t.Fatal("expected failed transfers to write nothing")
	}
}

func TestLedgerServiceTransferMissingAccountWinsOverClosed(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "10")
	if _, err := svc.ChangeStatus(ctx, "A", models.ChangeStatusRequest{Status: "Closed"}); err != nil {
		t.Fatalf("close: %v", err)
	}

	resp, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "ZZ", Amount: "1"})
	if !errors.Is(err, domain.ErrNotFound) || resp.Code != domain.KindNotFound {
		t.Fatalf("closed source, missing destination: expected not found, got %+v (%v)", resp, err)
	}

	resp, err = svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "ZZ", DestinationAccountID: "A", Amount: "1"})
	if !errors.Is(err, domain.ErrNotFound) || resp.Code != domain.KindNotFound {
		t.Fatalf("missing source, closed destination: expected not found, got %+v (%v)", resp, err)
	}

	mustOpen(t, svc, "B", "10")
	resp, err = svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "B", DestinationAccountID: "A", Amount: "1"})
	if !errors.Is(err, domain.ErrAccountClosed) || resp.Code != domain.KindAccountClosed {
		t.Fatalf("closed destination: expected account closed, got %+v (%v)", resp, err)
	}
	assertBalance(t, repo, "A", "10")
	assertBalance(t, repo, "B", "10")
}

func TestLedgerServiceRejectsBalanceBeyondColumnRange(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "9999999999999999.00")
	mustOpen(t, svc, "B", "5")

	resp, err := svc.Deposit(ctx, "A", models.MoneyOperationRequest{Amount: "1"})
	if !errors.Is(err, domain.ErrInvalidAmount) || resp.Code != domain.KindInvalidAmount {
		t.Fatalf("expected invalid amount on overflowing deposit, got %+v (%v)", resp, err)
	}
	if _, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "B", DestinationAccountID: "A", Amount: "5"}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount on overflowing transfer, got %v", err)
	}
	if _, err := svc.Deposit(ctx, "B", models.MoneyOperationRequest{Amount: "10000000000000000"}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for oversized deposit, got %v", err)
	}

	assertBalance(t, repo, "A", "9999999999999999")
	assertBalance(t, repo, "B", "5")
}

func TestLedgerServiceSelfTransfer(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "50")

	resp, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "A", Amount: "20"})
	if err != nil {
		t.Fatalf("expected self transfer to be allowed, got %v", err)
	}
	if resp.Data.SourceBalance != "30.00" || resp.Data.DestinationBalance != "50.00" {
		t.Fatalf("unexpected balances %+v", resp.Data)
	}
	assertBalance(t, repo, "A", "50")
	if got := len(entriesOf(t, repo, "A")); got != 3 {
		t.Fatalf("expected creation plus two transfer entries, got %d", got)
	}
	assertBalanceMatchesLog(t, repo, "A")

	if _, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "A", Amount: "60"}); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds on self transfer, got %v", err)
	}

	strict := services.NewLedgerService(repo, false)
	guarded, err := strict.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "A", Amount: "1"})
	if !errors.Is(err, domain.ErrSameAccount) || guarded.Code != domain.KindSameAccount {
		t.Fatalf("expected same account rejection, got %+v (%v)", guarded, err)
	}
}

func TestLedgerServiceClosedAccountBlocksMoneyOperations(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "100")
	mustOpen(t, svc, "B", "100")

	if _, err := svc.ChangeStatus(ctx, "A", models.ChangeStatusRequest{Status: "Closed"}); err != nil {
		t.Fatalf("close: %v", err)
	}

	ops := []func() error{
		func() error { _, err := svc.Deposit(ctx, "A", models.MoneyOperationRequest{Amount: "1"}); return err },
		func() error { _, err := svc.Withdraw(ctx, "A", models.MoneyOperationRequest{Amount: "1"}); return err },
		func() error {
			_, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "B", Amount: "1"})
			return err
		},
		func() error {
			_, err := svc.Transfer(ctx, models.TransferRequest{SourceAccountID: "B", DestinationAccountID: "A", Amount: "1"})
			return err
		},
	}
	for i, op := range ops {
		if err := op(); !errors.Is(err, domain.ErrAccountClosed) {
			t.Fatalf("op %d: expected account closed, got %v", i, err)
		}
	}

	if len(entriesOf(t, repo, "A")) != 1 || len(entriesOf(t, repo, "B")) != 1 {
		t.Fatal("expected zero log writes against closed account")
	}
	assertBalance(t, repo, "B", "100")
}

func TestLedgerServiceChangeStatusAnyTransition(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "5")

	for _, status := range []string{"Closed", "Active", "Dormant", "Dormant", "closed", "ACTIVE"} {
		resp, err := svc.ChangeStatus(ctx, "A", models.ChangeStatusRequest{Status: status})
		if err != nil {
			t.Fatalf("status %s: %v", status, err)
		}
		if resp.Data.Balance != "5.00" {
			t.Fatalf("expected balance untouched, got %s", resp.Data.Balance)
		}
	}
	if len(entriesOf(t, repo, "A")) != 1 {
		t.Fatal("expected status changes to append nothing")
	}

	if _, err := svc.Deposit(ctx, "A", models.MoneyOperationRequest{Amount: "1"}); err != nil {
		t.Fatalf("expected active account deposit, got %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, "A", models.ChangeStatusRequest{Status: "Dormant"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Withdraw(ctx, "A", models.MoneyOperationRequest{Amount: "1"}); err != nil {
		t.Fatalf("expected dormant account withdraw, got %v", err)
	}

	missing, err := svc.ChangeStatus(ctx, "nope", models.ChangeStatusRequest{Status: "Active"})
	if !errors.Is(err, domain.ErrNotFound) || missing.Code != domain.KindNotFound {
		t.Fatalf("expected not found, got %+v (%v)", missing, err)
	}
}

func TestLedgerServiceDeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "5")
	if _, err := svc.Deposit(ctx, "A", models.MoneyOperationRequest{Amount: "5"}); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.DeleteAccount(ctx, "A")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if resp.Data.TransactionsRemoved != 2 {
		t.Fatalf("expected 2 removed transactions, got %d", resp.Data.TransactionsRemoved)
	}

	history, err := svc.ListTransactions(ctx, "A")
	if err != nil || len(*history.Data) != 0 {
		t.Fatalf("expected empty history, got %+v (%v)", history.Data, err)
	}
	if _, err := svc.GetAccount(ctx, "A"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := svc.DeleteAccount(ctx, "A"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if len(entriesOf(t, repo, "A")) != 0 {
		t.Fatal("expected log to be empty")
	}
}

func TestLedgerServiceListAccounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedger(t)

	empty, err := svc.ListAccounts(ctx)
	if err != nil || empty.Data == nil || len(*empty.Data) != 0 {
		t.Fatalf("expected empty list, got %+v (%v)", empty.Data, err)
	}

	mustOpen(t, svc, "A", "1")
	mustOpen(t, svc, "B", "2")
	resp, err := svc.ListAccounts(ctx)
	if err != nil || len(*resp.Data) != 2 {
		t.Fatalf("expected two accounts, got %+v (%v)", resp.Data, err)
	}
}

func TestLedgerServiceConcurrentOpposingTransfers(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLedger(t)
	mustOpen(t, svc, "A", "1000")
	mustOpen(t, svc, "B", "1000")

	var g errgroup.Group
	for i := 0; i < 100; i++ {
		req := models.TransferRequest{SourceAccountID: "A", DestinationAccountID: "B", Amount: "3"}
		if i%2 == 1 {
			req = models.TransferRequest{SourceAccountID: "B", DestinationAccountID: "A", Amount: "2"}
		}
		g.Go(func() error {
			_, err := svc.Transfer(ctx, req)
			return err
		})
		g.Go(func() error {
			_, err := svc.Deposit(ctx, "A", models.MoneyOperationRequest{Amount: "1"})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent operations: %v", err)
	}

	// 50 transfers of 3 from A, 50 of 2 from B, 100 deposits of 1 into A.
	assertBalance(t, repo, "A", "1050")
	assertBalance(t, repo, "B", "1050")
	assertBalanceMatchesLog(t, repo, "A")
	assertBalanceMatchesLog(t, repo, "B")
}

func TestLedgerServiceSurfacesStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	tx := mocks.NewMockLedgerTx(ctrl)
	boom := errors.New("connection reset by peer")

	repo.EXPECT().
		WithinTx(gomock.Any(), []string{"A1"}, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ []string, fn func(repo_interfaces.LedgerTx) error) error {
			return fn(tx)
		})
	tx.EXPECT().GetAccount(gomock.Any(), "A1").Return(domain.Account{
		AccountID: "A1",
		Balance:   decimal.NewFromInt(10),
		Status:    domain.AccountStatusActive,
	}, nil)
	tx.EXPECT().UpdateBalance(gomock.Any(), "A1", gomock.Any()).Return(boom)

	svc := services.NewLedgerService(repo, true)
	resp, err := svc.Deposit(context.Background(), "A1", models.MoneyOperationRequest{Amount: "5"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
	if resp.Success || resp.Code != domain.KindInternal || resp.Message != "failed to deposit" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestLedgerServiceListSurfacesStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	boom := errors.New("timeout")
	repo.EXPECT().ListAccounts(gomock.Any()).Return(nil, boom)

	resp, err := services.NewLedgerService(repo, true).ListAccounts(context.Background())
	if !errors.Is(err, boom) || resp.Code != domain.KindInternal {
		t.Fatalf("expected internal failure, got %+v (%v)", resp, err)
	}
}
