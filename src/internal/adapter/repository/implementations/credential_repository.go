package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
)

type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, credential domain.Credential) (domain.Credential, error) {
	logger.Info("credential repository create", logger.Fields{
		"username": credential.Username,
		"role":     credential.Role,
	})

	const query = `
INSERT INTO operators (
	username,
	password_hash,
	role
) VALUES ($1, $2, $3)
RETURNING created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		credential.Username,
		credential.PasswordHash,
		credential.Role,
	).Scan(&credential.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			logger.Info("credential repository duplicate username", logger.Fields{
				"username": credential.Username,
			})
			return domain.Credential{}, domain.ErrDuplicateUsername
		}
		logger.Error("credential repository create failed", err, logger.Fields{
			"username": credential.Username,
		})
		return domain.Credential{}, fmt.Errorf("create credential: %w", err)
	}

	logger.Info("credential repository create success", logger.Fields{
		"username": credential.Username,
	})
	return credential, nil
}

func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (domain.Credential, error) {
	const query = `
SELECT username, password_hash, role, created_at
FROM operators
WHERE username = $1`

	var credential domain.Credential
	if err := r.db.QueryRowContext(ctx, query, username).Scan(
		&credential.Username,
		&credential.PasswordHash,
		&credential.Role,
		&credential.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("credential repository record not found", logger.Fields{
				"username": username,
			})
			return domain.Credential{}, domain.ErrCredentialNotFound
		}
		logger.Error("credential repository get failed", err, logger.Fields{
			"username": username,
		})
		return domain.Credential{}, fmt.Errorf("get credential by username: %w", err)
	}

	return credential, nil
}

func (r *CredentialRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM operators`).Scan(&count); err != nil {
		logger.Error("credential repository count failed", err, nil)
		return 0, fmt.Errorf("count credentials: %w", err)
	}
	return count, nil
}
