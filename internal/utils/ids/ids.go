// Package ids normalises the UUID identifiers that arrive in paths, bodies and tokens.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// Canonical returns id in lowercase hyphenated form.
// It reports false when id is not a UUID.
func Canonical(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}
