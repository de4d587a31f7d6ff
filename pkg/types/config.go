// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the paper-source client and aggregator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the Semantic Scholar API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageSize is the number of papers requested per API call (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRetries bounds retry attempts per API call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// PageDelay is the pause between consecutive pages of one job
	// (default 1s), keeping request rates polite.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// ServerConfig holds settings for the HTTP delivery layer.
type ServerConfig struct {
	// Port is the TCP port to listen on (default 8080).
	Port int `json:"port" yaml:"port"`

	// BindAddress is the interface to bind (default 127.0.0.1).
	BindAddress string `json:"bind_address" yaml:"bind_address"`

	// PresetsFile is an optional YAML file of example query sets served
	// to the form page. A missing file is not an error.
	PresetsFile string `json:"presets_file" yaml:"presets_file"`
}

// StoreConfig holds settings for the generated-document store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
