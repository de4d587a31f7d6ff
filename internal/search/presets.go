// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Preset is a named example request the form page can autofill.
type Preset struct {
	Name        string   `yaml:"name" json:"name"`
	Title       string   `yaml:"title" json:"title"`
	Queries     []string `yaml:"queries" json:"queries"`
	TotalPapers int      `yaml:"total_papers" json:"total_papers"`
}

// presetsFile is the on-disk representation of the presets list.
type presetsFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets reads example query sets from a YAML file. A missing file is
// not an error; the form simply has no examples to offer.
func LoadPresets(path string) ([]Preset, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	var pf presetsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	return pf.Presets, nil
}
