package config

const (
	defaultServerListen = ":8080"

	defaultClientAPITarget = "http://localhost:8080"

	defaultModel = "gemini-2.0-flash"

	defaultSearchEndpoint   = "https://google.serper.dev/search"
	defaultSearchMaxResults = 5
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			Listen: defaultServerListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		LLM: LLMConfig{
			Model: defaultModel,
		},
		Search: SearchConfig{
			Enabled:    false,
			Endpoint:   defaultSearchEndpoint,
			MaxResults: defaultSearchMaxResults,
		},
	}
}
