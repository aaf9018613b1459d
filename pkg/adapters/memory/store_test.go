package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	record := &domain.Record{
		ID: "r1",
		Result: domain.Failed(domain.Diagnostics{
			{Kind: domain.KindCycle, File: "a.h", Line: 1, Parent: "b.h"},
		}),
	}
	require.NoError(t, store.Save(ctx, record))

	// Mutating the caller's copy must not leak into the store
	record.Result.Diagnostics[0].File = "changed.h"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "a.h", loaded.Result.Diagnostics[0].File)
}
