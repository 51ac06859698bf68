package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/polyprep/polynotes/internal/logging"
)

// FileRepository keeps the blob in a single file inside a directory both
// processes can reach. Writes go through a temp file and rename, so a reader
// never observes a half-written snapshot.
type FileRepository struct {
	path string
	log  logging.Logger
}

// NewFileRepository returns a repository backed by the file at path. The
// parent directory is created on first save.
func NewFileRepository(path string, log logging.Logger) *FileRepository {
	return &FileRepository{path: path, log: log.With("component", "snapshot")}
}

// Path returns the backing file location.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	return data, true, nil
}

func (r *FileRepository) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o660); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Watch signals on the returned channel whenever the snapshot file is
// (re)written. Events are coalesced: a signal already pending absorbs
// subsequent ones until consumed.
func (r *FileRepository) Watch(ctx context.Context) (<-chan struct{}, error) {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, not the file: rename-based writes replace the
	// inode, and a watch on the old file would go quiet after the first save.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		base := filepath.Base(r.path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.log.Warn(ctx, "snapshot watcher error", "error", err)
			}
		}
	}()

	return out, nil
}
