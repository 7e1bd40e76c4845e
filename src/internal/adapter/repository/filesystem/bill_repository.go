package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
)

// BillRepository stores rendered bills as <dir>/<billID>.txt.
type BillRepository struct {
	dir string
}

func NewBillRepository(dir string) *BillRepository {
	return &BillRepository{dir: dir}
}

func (r *BillRepository) Save(_ context.Context, billID string, content string) (string, error) {
	path, err := r.pathFor(billID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		logger.Error("bill repository create directory failed", err, logger.Fields{"dir": r.dir})
		return "", fmt.Errorf("create bills directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		logger.Error("bill repository save failed", err, logger.Fields{"billId": billID})
		return "", fmt.Errorf("save bill: %w", err)
	}

	logger.Info("bill repository save success", logger.Fields{
		"billId": billID,
		"path":   path,
	})
	return path, nil
}

func (r *BillRepository) Load(_ context.Context, billID string) (string, error) {
	path, err := r.pathFor(billID)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrBillNotFound
		}
		logger.Error("bill repository load failed", err, logger.Fields{"billId": billID})
		return "", fmt.Errorf("load bill: %w", err)
	}
	return string(content), nil
}

// pathFor refuses ids that could escape the bills directory.
func (r *BillRepository) pathFor(billID string) (string, error) {
	id := strings.TrimSpace(billID)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", domain.ErrBillNotFound
	}
	return filepath.Join(r.dir, id+".txt"), nil
}
