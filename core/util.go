package core

import (
	"strings"
)

// SchoolClasses lists the classes a resource can target.
var SchoolClasses = []string{"8", "9", "10", "11", "12", "11-science", "12-science"}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// IsSchoolClass reports whether `class` is one of SchoolClasses.
func IsSchoolClass(class string) bool {
	for _, c := range SchoolClasses {
		if c == class {
			return true
		}
	}
	return false
}
