// Package watch implements the companion-device side: a read-only view of
// bookmarked notes over the shared snapshot. It never writes the blob and
// never talks to the backend.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/polyprep/polynotes/internal/client/models"
	"github.com/polyprep/polynotes/internal/client/repositories/snapshot"
	"github.com/polyprep/polynotes/internal/logging"
)

// Viewer mirrors the shared snapshot into memory and exposes the bookmarked
// subset.
type Viewer struct {
	repo snapshot.Repository
	log  logging.Logger

	// fallbackEvery bounds staleness when file events are lost (the other
	// process may live on a filesystem the watcher cannot see into).
	fallbackEvery time.Duration

	mu    sync.Mutex
	notes []models.Note
}

// NewViewer wires the viewer to the shared snapshot repository.
func NewViewer(repo snapshot.Repository, log logging.Logger) *Viewer {
	return &Viewer{
		repo:          repo,
		log:           log.With("component", "watch"),
		fallbackEvery: time.Minute,
	}
}

// Load re-reads the snapshot. Missing or corrupt blobs yield an empty view;
// the companion must keep working whatever the phone left behind.
func (v *Viewer) Load(ctx context.Context) {
	data, ok, err := v.repo.Load(ctx)
	if err != nil {
		v.log.Warn(ctx, "loading shared snapshot failed", "error", err)
		return
	}
	if !ok {
		v.setNotes(nil)
		return
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		v.log.Warn(ctx, "shared snapshot undecodable", "error", err)
		return
	}
	v.setNotes(snap.Notes)
	v.log.Debug(ctx, "snapshot reloaded", "notes", len(snap.Notes))
}

// Notes returns a copy of the full mirrored sequence.
func (v *Viewer) Notes() []models.Note {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Note, len(v.notes))
	copy(out, v.notes)
	return out
}

// Bookmarked returns the notes flagged for this device, newest first.
func (v *Viewer) Bookmarked() []models.Note {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []models.Note
	for _, n := range v.notes {
		if n.Bookmarked {
			out = append(out, n)
		}
	}
	return out
}

// Run reloads on snapshot-change events, with a slow fallback ticker, until
// ctx is done. onChange, when non-nil, receives the bookmarked subset after
// every reload.
func (v *Viewer) Run(ctx context.Context, onChange func([]models.Note)) error {
	events, err := v.repo.Watch(ctx)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(v.fallbackEvery)
	defer ticker.Stop()

	reload := func() {
		v.Load(ctx)
		if onChange != nil {
			onChange(v.Bookmarked())
		}
	}

	reload()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			reload()
		case <-ticker.C:
			reload()
		}
	}
}

func (v *Viewer) setNotes(notes []models.Note) {
	v.mu.Lock()
	v.notes = notes
	v.mu.Unlock()
}
