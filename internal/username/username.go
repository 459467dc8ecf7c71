// Package username canonicalizes account names so that uniqueness and login
// lookups are caseless: "Alice" and "alice" address the same account.
package username

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Canonical returns the storage/lookup form of a username: trimmed and
// Unicode case-folded.
func Canonical(name string) string {
	return folder.String(strings.TrimSpace(name))
}
