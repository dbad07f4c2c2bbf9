// Package files holds what the file store backends share.
package files

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageKey returns a unique, path-safe key for an uploaded file named name.
func StorageKey(name string) string {
	return uuid.NewString() + "-" + cleanName(name)
}

func cleanName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if clean == "" || clean == "." || clean == ".." {
		return "file"
	}
	return clean
}
