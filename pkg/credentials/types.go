package credentials

// Credentials is the on-disk representation of credentials.toml.
type Credentials struct {
	Version   int                           `toml:"version"`
	Providers map[string]ProviderCredential `toml:"providers"`
}

// ProviderCredential holds the stored secret for a single provider.
type ProviderCredential struct {
	APIKey string `toml:"api_key"`
}
