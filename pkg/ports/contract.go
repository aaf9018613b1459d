package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/exinc/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		record := &domain.Record{
			ID:           id,
			Parent:       "main.cpp",
			Preprocessor: domain.PreprocessorInliner,
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
			Result:       domain.Succeeded("int main(){}\n"),
		}

		require.NoError(t, store.Save(ctx, record), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		require.NotNil(t, loaded)

		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, record.Parent, loaded.Parent)
		assert.Equal(t, "int main(){}\n", loaded.Result.Output)
		assert.False(t, loaded.Result.HasErrors())
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Diagnostics Survive", func(t *testing.T) {
		failedID := id + "-failed"
		record := &domain.Record{
			ID:     failedID,
			Parent: domain.RootParent,
			Result: domain.Failed(domain.Diagnostics{
				{Kind: domain.KindNotFound, File: "missing.h", Line: 3, Parent: domain.RootParent},
			}),
		}
		require.NoError(t, store.Save(ctx, record))

		loaded, err := store.Load(ctx, failedID)
		require.NoError(t, err)
		assert.True(t, loaded.Result.HasErrors())
		require.Len(t, loaded.Result.Diagnostics, 1)
		assert.Equal(t, domain.KindNotFound, loaded.Result.Diagnostics[0].Kind)
		assert.Equal(t, 3, loaded.Result.Diagnostics[0].Line)

		require.NoError(t, store.Delete(ctx, failedID))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, id)
	})
}
