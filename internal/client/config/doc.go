// Package config loads runtime configuration for the client binaries.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including an optional .env file (see parseEnv).
//  3. Optional JSON file selected via flags: -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string    backend API base URL
//	-idp string  identity-provider base URL
//	-d string    data directory
//	-f int       snapshot flush interval (seconds)
//	-t int       request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "backend_base_url": "https://api.example.com",
//	  "identity_base_url": "https://id.example.com",
//	  "flush_interval": "15s"
//	}
//
// Environment variables use the POLYNOTES_ prefix (POLYNOTES_BACKEND_URL,
// POLYNOTES_DATA_DIR, ...); durations are parsed with time.ParseDuration.
package config
