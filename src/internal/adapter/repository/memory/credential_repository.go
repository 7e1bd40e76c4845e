package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
)

type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]domain.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{credentials: make(map[string]domain.Credential)}
}

func (r *CredentialRepository) Create(_ context.Context, credential domain.Credential) (domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.credentials[credential.Username]; exists {
		return domain.Credential{}, domain.ErrDuplicateUsername
	}
	credential.CreatedAt = time.Now().UTC()
	r.credentials[credential.Username] = credential
	return credential, nil
}

func (r *CredentialRepository) GetByUsername(_ context.Context, username string) (domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	credential, ok := r.credentials[username]
	if !ok {
		return domain.Credential{}, domain.ErrCredentialNotFound
	}
	return credential, nil
}

func (r *CredentialRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.credentials)), nil
}
