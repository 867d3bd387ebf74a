// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
)

// BaseWriter defines common operations shared by all writers
type BaseWriter interface {
	// GetKeyRevision retrieves the revision for a given key (used for cleanup operations)
	GetKeyRevision(ctx context.Context, key string) (uint64, error)

	// Delete removes a key with the given revision (used for cleanup and rollback)
	Delete(ctx context.Context, key string, revision uint64) error
}

// Reader combines all reader operations for lists and members
type Reader interface {
	ListReader
	MemberReader
}

// Writer combines all writer operations for lists and members
type Writer interface {
	ListWriter
	MemberWriter
}

// ReaderWriter combines all reader and writer operations for lists and members
type ReaderWriter interface {
	Reader
	Writer

	// IsReady checks if the storage is ready by verifying the connection
	IsReady(ctx context.Context) error
}
