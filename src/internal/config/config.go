package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=finance_pro_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultJWTSecret = "financepro-dev-secret"
const defaultTokenTTL = 12 * time.Hour
const defaultAdminUsername = "manager"
const defaultAdminPassword = "changeme"
const defaultAdminRole = "Manager"
const defaultBillsDir = "bills"
const defaultBillTitle = "GST Billing System"
const defaultTaxPercent = "18"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	DatabaseDSN       string
	MigrationsDir     string
	StorageDriver     string
	HTTPAddr          string
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPassword     string
	AdminRole         string
	AllowSelfTransfer bool
	BillsDir          string
	BillTitle         string
	DefaultTaxPercent decimal.Decimal
}

func Load() (Config, error) {
	conn := envOrDefault("DATABASE_DSN", defaultConnectionString)

	driver := strings.ToLower(envOrDefault("STORAGE_DRIVER", StorageDriverPostgres))
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}

	tokenTTL := defaultTokenTTL
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL must be positive")
		}
		tokenTTL = parsed
	}

	allowSelfTransfer := true
	if raw := strings.TrimSpace(os.Getenv("ALLOW_SELF_TRANSFER")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse ALLOW_SELF_TRANSFER: %w", err)
		}
		allowSelfTransfer = parsed
	}

	taxPercent, err := decimal.NewFromString(envOrDefault("DEFAULT_TAX_PERCENT", defaultTaxPercent))
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_TAX_PERCENT: %w", err)
	}
	if taxPercent.IsNegative() {
		return Config{}, fmt.Errorf("DEFAULT_TAX_PERCENT cannot be negative")
	}

	return Config{
		DatabaseDSN:       normalizeConnectionString(conn),
		MigrationsDir:     envOrDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		StorageDriver:     driver,
		HTTPAddr:          envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:         envOrDefault("JWT_SECRET", defaultJWTSecret),
		TokenTTL:          tokenTTL,
		AdminUsername:     envOrDefault("DEFAULT_ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:     envOrDefault("DEFAULT_ADMIN_PASSWORD", defaultAdminPassword),
		AdminRole:         envOrDefault("DEFAULT_ADMIN_ROLE", defaultAdminRole),
		AllowSelfTransfer: allowSelfTransfer,
		BillsDir:          envOrDefault("BILLS_DIR", defaultBillsDir),
		BillTitle:         envOrDefault("BILL_TITLE", defaultBillTitle),
		DefaultTaxPercent: taxPercent,
	}, nil
}

// UsesDefaultJWTSecret reports whether tokens are signed with the built-in
// development secret.
func (c Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func envOrDefault(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// normalizeConnectionString turns "Host=..;Database=..;Username=.." into the
// key=value form lib/pq expects. Strings already in libpq form pass through.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") && strings.Contains(raw, "://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host", "server":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username", "user id":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
