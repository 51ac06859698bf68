package config

import (
	"encoding/json"
	"os"

	"github.com/polyprep/polynotes/internal/flagx"
	"github.com/polyprep/polynotes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration so the file can specify either strings like "15s" or integer
// nanoseconds. Zero values mean "keep the current setting".
type JsonConfig struct {
	BackendBaseURL  string         `json:"backend_base_url"`
	IdentityBaseURL string         `json:"identity_base_url"`
	Realm           string         `json:"realm"`
	ClientID        string         `json:"client_id"`
	RedirectURI     string         `json:"redirect_uri"`
	DataDir         string         `json:"data_dir"`
	FlushInterval   timex.Duration `json:"flush_interval"`
	SweepInterval   timex.Duration `json:"sweep_interval"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	FeedCount       int            `json:"feed_count"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. With no such flag the function is a no-op; a file
// that cannot be read or parsed panics, since a config path given explicitly
// is expected to work.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = jc.IdentityBaseURL
	}
	if jc.Realm != "" {
		cfg.Realm = jc.Realm
	}
	if jc.ClientID != "" {
		cfg.ClientID = jc.ClientID
	}
	if jc.RedirectURI != "" {
		cfg.RedirectURI = jc.RedirectURI
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.FlushInterval.Duration != 0 {
		cfg.FlushInterval = jc.FlushInterval.Duration
	}
	if jc.SweepInterval.Duration != 0 {
		cfg.SweepInterval = jc.SweepInterval.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.FeedCount != 0 {
		cfg.FeedCount = jc.FeedCount
	}
}
