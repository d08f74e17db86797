package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "runs")
	store := file.New(dir)
	ctx := context.Background()

	// Listing a directory that does not exist yet is not an error.
	runs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	require.NoError(t, store.Save(ctx, "r1", &domain.RunRecord{ID: "r1", Tape: "10"}))
	_, err = os.Stat(filepath.Join(dir, "r1.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", ".."} {
		assert.ErrorIs(t, store.Save(ctx, id, &domain.RunRecord{}), domain.ErrInvalidRunID, id)
		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidRunID, id)
		assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrInvalidRunID, id)
	}
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".turing", "runs"), file.New("").BasePath)
}
