package memory_test

import (
	"github.com/draftline/outline/internal/storage"
	"github.com/draftline/outline/internal/storage/memory"
)

// Verify Backend implements storage.Backend interface
var _ storage.Backend = (*memory.Backend)(nil)
