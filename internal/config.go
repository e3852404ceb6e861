package internal

import (
	"fmt"
	"time"
)

const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	StorageBackend  string        `env:"STORAGE_BACKEND,default=memory"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Validate catches combinations the env tags cannot express.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StorageBadger:
		if c.BadgerFilepath == "" {
			return fmt.Errorf("BADGER_FILEPATH is required when STORAGE_BACKEND=%s", StorageBadger)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND: %q", c.StorageBackend)
	}
	return nil
}
