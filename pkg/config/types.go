package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent mediassist configuration stored as
// config.toml in the .mediassist/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Server  ServerConfig `toml:"server"`
	Client  ClientConfig `toml:"client"`
	LLM     LLMConfig    `toml:"llm"`
	Search  SearchConfig `toml:"search"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// mediassist server. Values are full URLs (scheme + host + port).
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Model string `toml:"model,omitempty"`
}

// SearchConfig holds web-search augmentation settings.
type SearchConfig struct {
	Enabled    bool   `toml:"enabled,omitempty"`
	Endpoint   string `toml:"endpoint,omitempty"`
	MaxResults uint   `toml:"max_results,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.listen": {
		get: func(c *Config) string { return c.Server.Listen },
		set: func(c *Config, v string) error { c.Server.Listen = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"llm.model": {
		get: func(c *Config) string { return c.LLM.Model },
		set: func(c *Config, v string) error { c.LLM.Model = v; return nil },
	},
	"search.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Search.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for search.enabled: %w", err)
			}
			c.Search.Enabled = b
			return nil
		},
	},
	"search.endpoint": {
		get: func(c *Config) string { return c.Search.Endpoint },
		set: func(c *Config, v string) error { c.Search.Endpoint = v; return nil },
	},
	"search.max_results": {
		get: func(c *Config) string {
			if c.Search.MaxResults == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Search.MaxResults), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for search.max_results: %w", err)
			}
			c.Search.MaxResults = uint(n)
			return nil
		},
	},
}
