package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry(testLogger())

	table, err := registry.CreateTable(CorellianSpike, DefaultConfig(CorellianSpike), nil, nil)
	require.NoError(t, err)
	assert.Len(t, table.Code(), codeLength)
	assert.Equal(t, 1, registry.Len())

	got, err := registry.Get(table.Code())
	require.NoError(t, err)
	assert.Same(t, table, got)

	registry.Remove(table.Code())
	_, err = registry.Get(table.Code())
	assert.ErrorIs(t, err, ErrNoSuchTable)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryRejectsBadConfig(t *testing.T) {
	registry := NewRegistry(testLogger())

	cfg := DefaultConfig(Kessel)
	cfg.StartingCards = 5
	_, err := registry.CreateTable(Kessel, cfg, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryCodesAreUnique(t *testing.T) {
	registry := NewRegistry(testLogger())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		table, err := registry.CreateTable(Traditional, DefaultConfig(Traditional), nil, nil)
		require.NoError(t, err)
		assert.False(t, seen[table.Code()])
		seen[table.Code()] = true
	}
}
