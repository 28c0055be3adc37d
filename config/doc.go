// Package config loads and validates the application configuration.
//
// Configuration is layered: a config.yml file provides the base, a .env
// file can supply secrets locally, and process environment variables
// override both (SESSION_CHUNK_LENGTH_MS overrides session.chunk_length_ms).
//
//	cfg, err := config.Load("scribe")
package config
