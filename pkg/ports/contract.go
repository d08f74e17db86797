package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string) *domain.RunRecord {
		return &domain.RunRecord{
			ID:        id,
			Machine:   "binary-increment",
			State:     "Do",
			Tape:      "_0111",
			Head:      4,
			Steps:     2,
			UpdatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Save
		rec := newRecord(runID)
		err := store.Save(ctx, runID, rec)
		require.NoError(t, err, "Save should not return error")

		// 2. Load
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.Machine, loaded.Machine)
		assert.Equal(t, rec.State, loaded.State)
		assert.Equal(t, rec.Tape, loaded.Tape, "leading blanks must survive persistence")
		assert.Equal(t, rec.Head, loaded.Head)
		assert.Equal(t, rec.Steps, loaded.Steps)
		assert.True(t, rec.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Overwrite", func(t *testing.T) {
		rec := newRecord(runID)
		rec.Halted = true
		rec.Tape = "1000"
		require.NoError(t, store.Save(ctx, runID, rec))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.True(t, loaded.Halted)
		assert.Equal(t, "1000", loaded.Tape)
	})

	t.Run("Isolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Tape = "mutated"

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Tape, "mutating a loaded record must not change the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, runID, newRecord(runID))
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 runs
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, id1, newRecord(id1))
		_ = store.Save(ctx, id2, newRecord(id2))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
