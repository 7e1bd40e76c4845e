package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces/mocks"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestExportServiceWritesHeaderAndRowsInStoreOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	repo.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{
		{AccountID: "B2", Holder: "Mehta, Ravi", Type: domain.AccountTypeCurrent, Balance: decimal.RequireFromString("12.5"), Status: domain.AccountStatusDormant, CreatedAt: created},
		{AccountID: "A1", Holder: "Asha", Type: domain.AccountTypeFixedDeposit, Balance: decimal.Zero, Status: domain.AccountStatusActive, CreatedAt: created},
	}, nil)

	var buf bytes.Buffer
	count, err := services.NewExportService(repo).ExportAccounts(context.Background(), &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{
		{"Account ID", "Holder", "Type", "Balance", "Status", "Created"},
		{"B2", "Mehta, Ravi", "Current", "12.50", "Dormant", "2024-03-01T09:30:00Z"},
		{"A1", "Asha", "Fixed Deposit", "0.00", "Active", "2024-03-01T09:30:00Z"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Fatalf("record %d col %d: expected %q, got %q", i, j, want[i][j], records[i][j])
			}
		}
	}
}

func TestExportServiceEmptyStoreWritesHeaderOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	repo.EXPECT().ListAccounts(gomock.Any()).Return([]domain.Account{}, nil)

	var buf bytes.Buffer
	if _, err := services.NewExportService(repo).ExportAccounts(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Account ID,Holder,Type,Balance,Status,Created\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestExportServiceSurfacesStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLedgerRepository(ctrl)
	boom := errors.New("db down")
	repo.EXPECT().ListAccounts(gomock.Any()).Return(nil, boom)

	var buf bytes.Buffer
	if _, err := services.NewExportService(repo).ExportAccounts(context.Background(), &buf); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("expected nothing written on failure")
	}
}
