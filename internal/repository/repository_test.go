package repository

import (
	"path/filepath"
	"testing"

	"github.com/andersonjr667/MeuControle/internal/storage"

	"github.com/stretchr/testify/require"
)

// newTestSelector returns a selector pinned to a fresh file store.
func newTestSelector(t *testing.T) *storage.Selector {
	t.Helper()
	file := storage.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	_, err := file.Load()
	require.NoError(t, err)
	return storage.NewSelector(nil, file)
}
