package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/exinc/pkg/adapters/file"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunResultStoreContract(t, store)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".exinc", "results"), store.BasePath)
}

func TestFileStore_Overwrite(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Record{ID: "r1", Result: domain.Succeeded("first")}))
	require.NoError(t, store.Save(ctx, &domain.Record{ID: "r1", Result: domain.Succeeded("second")}))

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Result.Output)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_ListIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Record{ID: "b"}))
	require.NoError(t, store.Save(ctx, &domain.Record{ID: "a"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "not-yet"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.Load(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestFileStore_EmptyID(t *testing.T) {
	store := file.New(t.TempDir())
	assert.Error(t, store.Save(context.Background(), &domain.Record{}))
	_, err := store.Load(context.Background(), "")
	assert.Error(t, err)
}

func TestFileStore_RejectsEscapingIDs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "results")
	store := file.New(dir)
	ctx := context.Background()

	// A record-shaped file outside the store must stay unreachable.
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.json"), []byte(`{"id":"x"}`), 0644))

	for _, id := range []string{"../x", "../../x", "sub/x", `sub\x`, "/tmp/x", ".hidden", ".."} {
		t.Run(id, func(t *testing.T) {
			_, err := store.Load(ctx, id)
			assert.ErrorIs(t, err, domain.ErrInvalidID)
			assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrInvalidID)
			assert.ErrorIs(t, store.Save(ctx, &domain.Record{ID: id}), domain.ErrInvalidID)
		})
	}
	assert.FileExists(t, filepath.Join(root, "x.json"))
	assert.NoDirExists(t, filepath.Join(dir, "sub"))

	id := "6f1c2b1e-8d7a-4f5e-9c3b-2a1d0e9f8b7c"
	require.NoError(t, store.Save(ctx, &domain.Record{ID: id}))
	_, err := store.Load(ctx, id)
	assert.NoError(t, err)
}
