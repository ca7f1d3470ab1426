package storage

import (
	"fmt"

	"github.com/draftline/outline/internal/config"
	"github.com/draftline/outline/internal/database"
	"github.com/draftline/outline/internal/storage/gormstore"
	"github.com/draftline/outline/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration. The
// sqlite and postgres backends share the GORM store; which database it
// lands in is the connection manager's concern.
func NewBackend(cfg config.StorageConfig, db *database.Manager) (Backend, error) {
	switch cfg.Backend {
	case "postgres", "sqlite":
		if db == nil {
			return nil, fmt.Errorf("storage backend %q requires a database manager", cfg.Backend)
		}
		return gormstore.New(db), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
