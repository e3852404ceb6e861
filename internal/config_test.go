package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("memory backend needs no filepath", func(t *testing.T) {
		cfg := Config{StorageBackend: StorageMemory}
		require.NoError(t, cfg.Validate())
	})

	t.Run("badger backend requires a filepath", func(t *testing.T) {
		cfg := Config{StorageBackend: StorageBadger}
		require.Error(t, cfg.Validate())

		cfg.BadgerFilepath = "/var/lib/match-lab"
		require.NoError(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := Config{StorageBackend: "postgres"}
		require.Error(t, cfg.Validate())
	})
}
