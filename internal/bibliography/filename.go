// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"fmt"
	"strings"
)

// FilenameForTitle derives the download filename from a document title:
// spaces become underscores and ".json" is appended. Titles that would
// produce a traversal-unsafe or empty name are rejected.
func FilenameForTitle(title string) (string, error) {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if name == "" {
		return "", fmt.Errorf("title produces an empty filename")
	}
	full := name + ".json"
	if !SafeFilename(full) {
		return "", fmt.Errorf("title %q produces an unsafe filename", title)
	}
	return full, nil
}

// SafeFilename reports whether name is a plain ".json" filename with no
// path separators, parent references, or leading dot.
func SafeFilename(name string) bool {
	if name == "" || !strings.HasSuffix(name, ".json") {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return true
}
