package models

import (
	"strings"

	"github.com/google/uuid"
)

// Record identifiers are table-scoped strings: a pairing ID always carries
// the "pr_" prefix and a clipboard item ID the "ci_" prefix. Clients hold on
// to these strings and echo them back over the API, possibly long after the
// record is gone, so every externally supplied ID must pass through a
// Normalize helper before it is used in a lookup.

const (
	PairingIDPrefix       = "pr_"
	ClipboardItemIDPrefix = "ci_"
)

// NewPairingID generates a fresh pairing identifier
func NewPairingID() string {
	return PairingIDPrefix + uuid.New().String()
}

// NewClipboardItemID generates a fresh clipboard item identifier
func NewClipboardItemID() string {
	return ClipboardItemIDPrefix + uuid.New().String()
}

// NormalizePairingID validates an externally supplied pairing ID and returns
// its canonical form. Returns false for malformed strings and for IDs
// belonging to another table.
func NormalizePairingID(raw string) (string, bool) {
	return normalizeID(PairingIDPrefix, raw)
}

// NormalizeClipboardItemID validates an externally supplied clipboard item ID
func NormalizeClipboardItemID(raw string) (string, bool) {
	return normalizeID(ClipboardItemIDPrefix, raw)
}

func normalizeID(prefix, raw string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), prefix)
	if !ok {
		return "", false
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		return "", false
	}
	// uuid.Parse accepts urn:, braced, and uppercase variants; only the
	// canonical lowercase form is a valid identifier.
	if rest != id.String() {
		return "", false
	}

	return prefix + rest, true
}
