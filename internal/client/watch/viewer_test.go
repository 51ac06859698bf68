package watch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyprep/polynotes/internal/client/models"
	"github.com/polyprep/polynotes/internal/client/repositories/snapshot"
	"github.com/polyprep/polynotes/internal/logging"
)

func writeSnapshot(t *testing.T, repo *snapshot.FileRepository, notes []models.Note) {
	t.Helper()
	data, err := models.EncodeSnapshot(notes, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), data))
}

func TestLoad_FiltersNothing(t *testing.T) {
	repo := snapshot.NewFileRepository(filepath.Join(t.TempDir(), "notes.json"), logging.Discard())
	writeSnapshot(t, repo, []models.Note{
		{ID: 1, Title: "plain"},
		{ID: 2, Title: "marked", Bookmarked: true},
	})

	v := NewViewer(repo, logging.Discard())
	v.Load(context.Background())

	assert.Len(t, v.Notes(), 2)

	marked := v.Bookmarked()
	require.Len(t, marked, 1)
	assert.Equal(t, int64(2), marked[0].ID)
}

func TestLoad_MissingSnapshot(t *testing.T) {
	repo := snapshot.NewFileRepository(filepath.Join(t.TempDir(), "notes.json"), logging.Discard())

	v := NewViewer(repo, logging.Discard())
	v.Load(context.Background())

	assert.Empty(t, v.Notes())
	assert.Empty(t, v.Bookmarked())
}

func TestLoad_CorruptSnapshotKeepsPreviousView(t *testing.T) {
	dir := t.TempDir()
	repo := snapshot.NewFileRepository(filepath.Join(dir, "notes.json"), logging.Discard())
	writeSnapshot(t, repo, []models.Note{{ID: 1, Bookmarked: true}})

	v := NewViewer(repo, logging.Discard())
	v.Load(context.Background())
	require.Len(t, v.Bookmarked(), 1)

	require.NoError(t, repo.Save(context.Background(), []byte("{broken")))
	v.Load(context.Background())

	// a bad write from the other process must not blank the watch display
	assert.Len(t, v.Bookmarked(), 1)
}

func TestRun_ReloadsOnSnapshotChange(t *testing.T) {
	repo := snapshot.NewFileRepository(filepath.Join(t.TempDir(), "notes.json"), logging.Discard())
	writeSnapshot(t, repo, []models.Note{{ID: 1, Bookmarked: true}})

	v := NewViewer(repo, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan int, 16)
	go func() {
		_ = v.Run(ctx, func(marked []models.Note) {
			updates <- len(marked)
		})
	}()

	// initial reload
	select {
	case n := <-updates:
		assert.Equal(t, 1, n)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial reload")
	}

	writeSnapshot(t, repo, []models.Note{
		{ID: 1, Bookmarked: true},
		{ID: 2, Bookmarked: true},
	})

	deadline := time.After(5 * time.Second)
	for {
		select {
		case n := <-updates:
			if n == 2 {
				return
			}
		case <-deadline:
			t.Fatal("viewer never saw the second bookmark")
		}
	}
}
