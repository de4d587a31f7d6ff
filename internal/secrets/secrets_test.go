// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "  env-key \n")
	if got := APIKey(t.TempDir()); got != "env-key" {
		t.Errorf("APIKey() = %q, want %q", got, "env-key")
	}
}

func TestAPIKeyFromFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "semantic-scholar-api-key"), []byte("file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := APIKey(dir); got != "file-key" {
		t.Errorf("APIKey() = %q, want %q", got, "file-key")
	}
}

func TestAPIKeyEnvWinsOverFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "semantic-scholar-api-key"), []byte("file-key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := APIKey(dir); got != "env-key" {
		t.Errorf("APIKey() = %q, want %q", got, "env-key")
	}
}

func TestAPIKeyMissing(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	if got := APIKey(t.TempDir()); got != "" {
		t.Errorf("APIKey() = %q, want empty", got)
	}
}
