package repo_interfaces

import "context"

type BillRepository interface {
	Save(ctx context.Context, billID string, content string) (string, error)
	Load(ctx context.Context, billID string) (string, error)
}
