package main

import (
	"context"
	"log"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/implementations"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := implementations.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Println("migrations completed successfully")
}
