package service_interfaces

import (
	"context"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/security"
)

type CredentialService interface {
	CreateCredential(ctx context.Context, req models.CreateOperatorRequest) (commons.Response[models.OperatorResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
}

// OperatorAuthenticator is what the HTTP auth middleware needs to admit a caller.
type OperatorAuthenticator interface {
	Verify(ctx context.Context, username string, password string) (domain.Credential, bool, error)
	ParseToken(raw string) (security.Claims, error)
}
