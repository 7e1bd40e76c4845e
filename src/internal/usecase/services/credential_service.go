package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/security"
)

type CredentialService struct {
	credentialRepo repo_interfaces.CredentialRepository
	tokens         *security.TokenIssuer
}

func NewCredentialService(credentialRepo repo_interfaces.CredentialRepository, tokens *security.TokenIssuer) *CredentialService {
	return &CredentialService{
		credentialRepo: credentialRepo,
		tokens:         tokens,
	}
}

func (s *CredentialService) CreateCredential(ctx context.Context, req models.CreateOperatorRequest) (commons.Response[models.OperatorResponse], error) {
	logger.Info("credential service create credential request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("credential service create credential validation failed", err, nil)
		return commons.ValidationResponse[models.OperatorResponse](err.Error()), err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		logger.Error("credential service hash password failed", err, nil)
		return commons.ErrorResponse[models.OperatorResponse]("failed to create operator", "Unable to create operator right now"), err
	}

	created, err := s.credentialRepo.Create(ctx, domain.Credential{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         normalizeRole(req.Role),
	})
	if err != nil {
		logger.Error("credential service create credential repository failed", err, logger.Fields{
			"username": req.Username,
		})
		return commons.FailureResponse[models.OperatorResponse](err, "failed to create operator"), err
	}

	logger.Info("credential service create credential success", logger.Fields{
		"username": created.Username,
		"role":     created.Role,
	})
	return commons.SuccessResponse("operator created successfully", models.OperatorResponse{
		Username:  created.Username,
		Role:      created.Role,
		CreatedAt: created.CreatedAt.UTC().Format(time.RFC3339),
	}), nil
}

// Verify reports whether password matches the stored credential. Unknown
// usernames and malformed records verify as false; only store failures error.
func (s *CredentialService) Verify(ctx context.Context, username string, password string) (domain.Credential, bool, error) {
	credential, err := s.credentialRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			logger.Info("credential service verify unknown username", logger.Fields{
				"username": username,
			})
			return domain.Credential{}, false, nil
		}
		logger.Error("credential service verify lookup failed", err, logger.Fields{
			"username": username,
		})
		return domain.Credential{}, false, err
	}

	if !security.VerifyPassword(credential.PasswordHash, password) {
		logger.Info("credential service verify mismatch", logger.Fields{
			"username": username,
		})
		return domain.Credential{}, false, nil
	}
	return credential, true, nil
}

func (s *CredentialService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("credential service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ValidationResponse[models.LoginResponse](err.Error()), err
	}

	credential, ok, err := s.Verify(ctx, req.Username, req.Password)
	if err != nil {
		return commons.FailureResponse[models.LoginResponse](err, "failed to login"), err
	}
	if !ok {
		err := domain.ErrInvalidCredentials
		return commons.FailureResponse[models.LoginResponse](err, "failed to login"), err
	}

	token, expiresAt, err := s.tokens.Issue(credential.Username, credential.Role)
	if err != nil {
		logger.Error("credential service issue token failed", err, logger.Fields{
			"username": credential.Username,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to issue token right now"), err
	}

	logger.Info("credential service login success", logger.Fields{
		"username": credential.Username,
	})
	return commons.SuccessResponse("login successful", models.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Username:  credential.Username,
		Role:      credential.Role,
	}), nil
}

// EnsureDefaultOperator seeds one operator when no credentials exist yet.
// It reports whether a credential was created.
func (s *CredentialService) EnsureDefaultOperator(ctx context.Context, username string, password string, role string) (bool, error) {
	count, err := s.credentialRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.CreateCredential(ctx, models.CreateOperatorRequest{
		Username: username,
		Password: password,
		Role:     role,
	}); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}

	logger.Warn("default operator created, change its password", logger.Fields{
		"username": username,
	})
	return true, nil
}

func (s *CredentialService) ParseToken(raw string) (security.Claims, error) {
	return s.tokens.Parse(raw)
}

func normalizeRole(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), domain.RoleManager) {
		return domain.RoleManager
	}
	return domain.RoleOperator
}
