package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairingID(t *testing.T) {
	id := NewPairingID()

	assert.True(t, strings.HasPrefix(id, PairingIDPrefix))

	normalized, ok := NormalizePairingID(id)
	require.True(t, ok)
	assert.Equal(t, id, normalized)
}

func TestNormalizePairingID(t *testing.T) {
	valid := NewPairingID()
	itemID := NewClipboardItemID()

	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid id", valid, true},
		{"valid id with surrounding whitespace", "  " + valid + "  ", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"missing prefix", strings.TrimPrefix(valid, PairingIDPrefix), false},
		{"clipboard item id", itemID, false},
		{"garbage", "not-an-id", false},
		{"prefix with garbage uuid", PairingIDPrefix + "zzzz", false},
		{"uppercase uuid rejected", PairingIDPrefix + "ABCDEF00-0000-0000-0000-000000000000", false},
		{"braced uuid rejected", PairingIDPrefix + "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, ok := NormalizePairingID(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, strings.TrimSpace(tt.raw), normalized)
			} else {
				assert.Empty(t, normalized)
			}
		})
	}
}

func TestNormalizeClipboardItemID(t *testing.T) {
	valid := NewClipboardItemID()

	normalized, ok := NormalizeClipboardItemID(valid)
	require.True(t, ok)
	assert.Equal(t, valid, normalized)

	_, ok = NormalizeClipboardItemID(NewPairingID())
	assert.False(t, ok)
}
