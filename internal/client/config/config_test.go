package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, defaultBackendBaseURL, cfg.BackendBaseURL)
	assert.Equal(t, defaultIdentityBaseURL, cfg.IdentityBaseURL)
	assert.Equal(t, defaultClientID, cfg.ClientID)
	assert.Equal(t, defaultRedirectURI, cfg.RedirectURI)
	assert.Equal(t, 15*time.Second, cfg.FlushInterval)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.FeedCount)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("POLYNOTES_BACKEND_URL", "http://localhost:8080")
	t.Setenv("POLYNOTES_FLUSH_INTERVAL", "5s")
	t.Setenv("POLYNOTES_FEED_COUNT", "25")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://localhost:8080", cfg.BackendBaseURL)
	assert.Equal(t, 5*time.Second, cfg.FlushInterval)
	assert.Equal(t, 25, cfg.FeedCount)
	// untouched values keep their defaults
	assert.Equal(t, defaultClientID, cfg.ClientID)
}

func TestParseEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("POLYNOTES_FLUSH_INTERVAL", "soonish")
	t.Setenv("POLYNOTES_FEED_COUNT", "many")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, 15*time.Second, cfg.FlushInterval)
	assert.Equal(t, 10, cfg.FeedCount)
}

func TestParseJson_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	jc := map[string]any{
		"backend_base_url": "http://json:9090",
		"flush_interval":   "3s",
		"feed_count":       7,
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"app", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "http://json:9090", cfg.BackendBaseURL)
	assert.Equal(t, 3*time.Second, cfg.FlushInterval)
	assert.Equal(t, 7, cfg.FeedCount)
	assert.Equal(t, defaultIdentityBaseURL, cfg.IdentityBaseURL)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"app", "-b", "http://flags:7070", "-f", "60", "-t", "20"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, "http://flags:7070", cfg.BackendBaseURL)
	assert.Equal(t, 60*time.Second, cfg.FlushInterval)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
}
