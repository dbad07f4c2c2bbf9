package files

import (
	"strings"
	"testing"
)

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"paper.pdf", "paper.pdf"},
		{"Maths 2023 (final).pdf", "Maths_2023__final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\paper.pdf`, "paper.pdf"},
		{"..", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := StorageKey(tt.name)
			if !strings.HasSuffix(key, "-"+tt.want) {
				t.Errorf("StorageKey(%q) = %q, want suffix %q", tt.name, key, "-"+tt.want)
			}
			if strings.ContainsAny(key, `/\`) {
				t.Errorf("StorageKey(%q) = %q contains a path separator", tt.name, key)
			}
		})
	}
	if StorageKey("a.pdf") == StorageKey("a.pdf") {
		t.Error("StorageKey() returned the same key twice")
	}
}
