package gormstore_test

import (
	"github.com/draftline/outline/internal/storage"
	"github.com/draftline/outline/internal/storage/gormstore"
)

// Compile-time interface check
var _ storage.Backend = (*gormstore.Backend)(nil)
