package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execResult struct {
	rows int64
	err  error
}

func (r execResult) LastInsertId() (int64, error) { return 0, nil }
func (r execResult) RowsAffected() (int64, error) { return r.rows, r.err }

type execOnly struct {
	result sql.Result
	err    error
}

func (e execOnly) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return e.result, e.err
}

func (e execOnly) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (e execOnly) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func TestExecRequiredRows(t *testing.T) {
	ctx := context.Background()

	rows, err := execRequiredRows(ctx, execOnly{result: execResult{rows: 1}}, domain.ErrNotFound, "UPDATE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = execRequiredRows(ctx, execOnly{result: execResult{rows: 0}}, domain.ErrNotFound, "UPDATE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("connection reset")
	_, err = execRequiredRows(ctx, execOnly{err: boom}, domain.ErrNotFound, "UPDATE")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []string{"A1", "A2"}, sortedUnique([]string{"A2", "A1", "A2"}))
	assert.Empty(t, sortedUnique(nil))
}

func TestMigrationFilesAreSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_more.sql", "001_init.SQL", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.SQL", "002_more.sql"}, files)

	_, err = migrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestBundledMigrationDefinesLedgerTables(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	for _, fragment := range []string{
		"CREATE TABLE IF NOT EXISTS accounts",
		"CHECK (balance >= 0)",
		"ON DELETE CASCADE",
		"CREATE TABLE IF NOT EXISTS operators",
	} {
		assert.Contains(t, string(body), fragment)
	}
}
