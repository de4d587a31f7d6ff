// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Semantic Scholar API key. The environment
// (including a .env file loaded at startup) takes precedence; a plain-text
// file in the .secrets/ directory is the fallback.
package secrets

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvAPIKey is the environment variable holding the Semantic Scholar key.
const EnvAPIKey = "SEMANTIC_SCHOLAR_API_KEY"

// keyFileName is the fallback key file inside the secrets directory.
const keyFileName = "semantic-scholar-api-key"

// DefaultDir is where the key file lives by default.
const DefaultDir = ".secrets"

// APIKey returns the Semantic Scholar API key from the environment, or
// from dir/semantic-scholar-api-key, or "" when neither is set. Callers
// decide whether a missing key is fatal.
func APIKey(dir string) string {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v
	}
	if dir == "" {
		dir = DefaultDir
	}
	data, err := os.ReadFile(filepath.Join(dir, keyFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
