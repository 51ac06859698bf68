package config

import "time"

const (
	defaultBackendBaseURL  = "https://api.polyprep.app"
	defaultIdentityBaseURL = "https://id.polyprep.app"
	defaultRealm           = "polyprep"
	defaultClientID        = "polyprep-mobile"
	defaultRedirectURI     = "polyprep://auth/callback"
)

// Config holds runtime settings for the client core.
//
// Fields:
//   - BackendBaseURL: base URL of the backend REST API.
//   - IdentityBaseURL / Realm: identity-provider location.
//   - ClientID / RedirectURI: OAuth2 client settings for the redirect flow.
//   - DataDir: directory holding the session database and the shared snapshot.
//   - FlushInterval: how often the note store persists its snapshot.
//   - SweepInterval: how often scheduled notes are checked for publication.
//   - RequestTimeout: upper bound on any single backend request.
//   - FeedCount: default number of posts requested by a feed refresh.
type Config struct {
	BackendBaseURL  string
	IdentityBaseURL string
	Realm           string
	ClientID        string
	RedirectURI     string
	DataDir         string
	FlushInterval   time.Duration
	SweepInterval   time.Duration
	RequestTimeout  time.Duration
	FeedCount       int
}

// LoadDefaults populates c with the fixed fallback values.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = defaultBackendBaseURL
	c.IdentityBaseURL = defaultIdentityBaseURL
	c.Realm = defaultRealm
	c.ClientID = defaultClientID
	c.RedirectURI = defaultRedirectURI
	c.DataDir = "data"
	c.FlushInterval = 15 * time.Second
	c.SweepInterval = 30 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.FeedCount = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if present)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
