package repo_interfaces

import (
	"context"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_credential_repository.go -package=mocks -source=credential_repository.go
type CredentialRepository interface {
	Create(ctx context.Context, credential domain.Credential) (domain.Credential, error)
	GetByUsername(ctx context.Context, username string) (domain.Credential, error)
	Count(ctx context.Context) (int64, error)
}
