package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyprep/polynotes/internal/client/auth"
	"github.com/polyprep/polynotes/internal/client/config"
	"github.com/polyprep/polynotes/internal/client/models"
	"github.com/polyprep/polynotes/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	cfg.FlushInterval = 50 * time.Millisecond
	cfg.SweepInterval = 50 * time.Millisecond
	return cfg
}

func TestNew_WiresComponents(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NotNil(t, a.Auth)
	require.NotNil(t, a.Store)
	assert.Equal(t, auth.StateLoggedOut, a.Auth.State())

	// the token DB landed inside the data dir
	_, err = os.Stat(filepath.Join(cfg.DataDir, "session.db"))
	assert.NoError(t, err)
}

func TestRun_FlushesSnapshotAndStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	a.Store.Add(ctx, models.Note{Title: "hello"})

	// the mutation flush writes the shared blob
	snapPath := filepath.Join(cfg.DataDir, SnapshotFileName)
	require.Eventually(t, func() bool {
		_, err := os.Stat(snapPath)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
