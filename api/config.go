// Package api provides the HTTP API server that web front-ends drive the
// chat through.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// DefaultSearchEnabled is the search-augmentation setting new sessions
	// start with.
	DefaultSearchEnabled bool
}
