// Package snapshot is the shared durable blob store both client processes
// read. The blob is the entire serialized note sequence; writes are
// whole-value overwrites with last-writer-wins semantics and no locking
// across processes.
package snapshot

import "context"

// Repository stores one opaque blob under a well-known location.
type Repository interface {
	// Load returns the current blob. ok is false when no blob has been
	// written yet; that is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)

	// Save overwrites the blob unconditionally.
	Save(ctx context.Context, data []byte) error

	// Watch returns a channel that receives a signal whenever another
	// writer overwrites the blob. The channel closes when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
