// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	content := `presets:
  - name: slam
    title: NeRF SLAM
    queries: ["neural radiance fields", "simultaneous localization and mapping"]
    total_papers: 50
  - name: diffusion
    title: Diffusion Models
    queries: ["diffusion models"]
    total_papers: 25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("len(presets) = %d, want 2", len(presets))
	}
	if presets[0].Title != "NeRF SLAM" || presets[0].TotalPapers != 50 {
		t.Errorf("presets[0] = %+v", presets[0])
	}
	if len(presets[0].Queries) != 2 {
		t.Errorf("len(presets[0].Queries) = %d, want 2", len(presets[0].Queries))
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	presets, err := LoadPresets(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if presets != nil {
		t.Errorf("presets = %v, want nil", presets)
	}
}

func TestLoadPresetsEmptyPath(t *testing.T) {
	presets, err := LoadPresets("")
	if err != nil || presets != nil {
		t.Errorf("LoadPresets(\"\") = %v, %v; want nil, nil", presets, err)
	}
}

func TestLoadPresetsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("presets: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
