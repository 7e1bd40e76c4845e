package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/implementations"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/config"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/security"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/services"
)

const usage = `usage: ledgerctl <command> [flags]

commands:
  accounts                          list accounts, newest first
  history -account ID               transaction history of one account
  export -out FILE                  write all accounts as CSV ("-" for stdout)
  calc -expr EXPRESSION             evaluate a keypad expression
  create-operator -username U -password P [-role R]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ledgerctl %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	switch command {
	case "calc":
		return runCalc(ctx, args, out)
	case "accounts", "history", "export", "create-operator":
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ledgerRepo := implementations.NewLedgerRepository(db)
	switch command {
	case "accounts":
		return runAccounts(ctx, services.NewLedgerService(ledgerRepo, cfg.AllowSelfTransfer), out)
	case "history":
		return runHistory(ctx, services.NewLedgerService(ledgerRepo, cfg.AllowSelfTransfer), args, out)
	case "export":
		return runExport(ctx, services.NewExportService(ledgerRepo), args, out)
	default:
		credentials := services.NewCredentialService(implementations.NewCredentialRepository(db), security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))
		return runCreateOperator(ctx, credentials, args, out)
	}
}

func runAccounts(ctx context.Context, ledger *services.LedgerService, out io.Writer) error {
	response, err := ledger.ListAccounts(ctx)
	if err != nil {
		return err
	}
	renderAccounts(out, *response.Data)
	return nil
}

func runHistory(ctx context.Context, ledger *services.LedgerService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	accountID := fs.String("account", "", "account id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID == "" {
		fs.Usage()
		return errors.New("-account is required")
	}

	response, err := ledger.ListTransactions(ctx, *accountID)
	if err != nil {
		return err
	}
	renderTransactions(out, *response.Data)
	return nil
}

func runExport(ctx context.Context, export *services.ExportService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	path := fs.String("out", "accounts.csv", `output file, "-" for stdout`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "-" {
		_, err := export.ExportAccounts(ctx, out)
		return err
	}

	file, err := os.Create(*path)
	if err != nil {
		return err
	}
	count, err := export.ExportAccounts(ctx, file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "exported %d accounts to %s\n", count, *path)
	return nil
}

func runCalc(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	expr := fs.String("expr", "", "expression, e.g. 12+7*3")
	if err := fs.Parse(args); err != nil {
		return err
	}

	response, err := services.NewCalculatorService().Evaluate(ctx, models.EvaluateRequest{Expression: *expr})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, response.Data.Result)
	return nil
}

func runCreateOperator(ctx context.Context, credentials *services.CredentialService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-operator", flag.ContinueOnError)
	username := fs.String("username", "", "operator username (required)")
	password := fs.String("password", "", "operator password (required)")
	role := fs.String("role", "Operator", "Manager or Operator")
	if err := fs.Parse(args); err != nil {
		return err
	}

	response, err := credentials.CreateCredential(ctx, models.CreateOperatorRequest{
		Username: *username,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created operator %s (%s)\n", response.Data.Username, response.Data.Role)
	return nil
}

func renderAccounts(out io.Writer, accounts []models.AccountResponse) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Account ID", "Holder", "Type", "Balance", "Status", "Created"})
	for _, account := range accounts {
		table.Append([]string{account.AccountID, account.Holder, account.AccountType, account.Balance, account.Status, account.CreatedAt})
	}
	table.Render()
}

func renderTransactions(out io.Writer, entries []models.TransactionResponse) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Seq", "Action", "Amount", "Balance", "Remarks", "At"})
	for _, entry := range entries {
		table.Append([]string{
			strconv.FormatInt(entry.Sequence, 10),
			entry.Action,
			entry.Amount,
			entry.ResultingBalance,
			entry.Remarks,
			entry.CreatedAt,
		})
	}
	table.Render()
}
