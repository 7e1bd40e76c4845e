package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/controller"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/middleware"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/router"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/filesystem"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/implementations"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/memory"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/config"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/security"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("server stopped with error", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	warnInsecureDefaults(cfg)

	ledgerRepo, credentialRepo, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	credentialService := services.NewCredentialService(credentialRepo, security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))
	if _, err := credentialService.EnsureDefaultOperator(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminRole); err != nil {
		return err
	}

	ledgerService := services.NewLedgerService(ledgerRepo, cfg.AllowSelfTransfer)
	exportService := services.NewExportService(ledgerRepo)
	billingService := services.NewBillingService(filesystem.NewBillRepository(cfg.BillsDir), cfg.BillTitle, cfg.DefaultTaxPercent)

	mux := router.New(
		controller.NewLedgerController(ledgerService, exportService),
		controller.NewAuthController(credentialService),
		controller.NewBillingController(billingService, services.NewCalculatorService()),
		middleware.OperatorAuth(credentialService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":    cfg.HTTPAddr,
			"storage": cfg.StorageDriver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("http server shutting down", nil)
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func warnInsecureDefaults(cfg config.Config) {
	if cfg.UsesDefaultJWTSecret() {
		logger.Warn("JWT_SECRET not set, operator tokens are signed with the development secret", nil)
	}
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart", nil)
	}
}

func openStores(ctx context.Context, cfg config.Config) (repo_interfaces.LedgerRepository, repo_interfaces.CredentialRepository, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewLedgerRepository(), memory.NewCredentialRepository(), func() {}, nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.Open(openCtx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := implementations.RunMigrations(openCtx, db, cfg.MigrationsDir); err != nil {
		closeDB(db)
		return nil, nil, nil, err
	}

	return implementations.NewLedgerRepository(db), implementations.NewCredentialRepository(db), func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Error("close database failed", err, nil)
	}
}
