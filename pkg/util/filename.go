package util

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename strips any path components and characters that would be
// unsafe in a staged file name. The original base name is preserved as far
// as possible because it carries the scene sort key.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return "_"
	}

	var b strings.Builder
	for _, r := range base {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return "_"
	}
	return cleaned
}
