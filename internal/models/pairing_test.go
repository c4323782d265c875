package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairing(t *testing.T) {
	t.Run("creates active pairing", func(t *testing.T) {
		p, err := NewPairing("android-1", "Phone", "mac-1", "Laptop")
		require.NoError(t, err)

		assert.Equal(t, "android-1", p.AndroidDeviceID)
		assert.Equal(t, "mac-1", p.MacDeviceID)
		assert.Equal(t, PairingStatusActive, p.Status)
		assert.True(t, p.IsActive())
		assert.False(t, p.CreatedAt.IsZero())

		_, ok := NormalizePairingID(p.ID)
		assert.True(t, ok)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		p, err := NewPairing("  android-1  ", " Phone ", " mac-1 ", " Laptop ")
		require.NoError(t, err)

		assert.Equal(t, "android-1", p.AndroidDeviceID)
		assert.Equal(t, "Phone", p.AndroidDeviceName)
		assert.Equal(t, "mac-1", p.MacDeviceID)
		assert.Equal(t, "Laptop", p.MacDeviceName)
	})

	t.Run("rejects empty android device id", func(t *testing.T) {
		_, err := NewPairing("", "Phone", "mac-1", "Laptop")
		assert.Equal(t, ErrEmptyAndroidDeviceID, err)
	})

	t.Run("rejects empty mac device id", func(t *testing.T) {
		_, err := NewPairing("android-1", "Phone", "   ", "Laptop")
		assert.Equal(t, ErrEmptyMacDeviceID, err)
	})

	t.Run("rejects empty device names", func(t *testing.T) {
		_, err := NewPairing("android-1", "", "mac-1", "Laptop")
		assert.Equal(t, ErrEmptyDeviceName, err)

		_, err = NewPairing("android-1", "Phone", "mac-1", "")
		assert.Equal(t, ErrEmptyDeviceName, err)
	})
}

func TestNewClipboardItem(t *testing.T) {
	pairingID := NewPairingID()

	t.Run("creates item", func(t *testing.T) {
		item, err := NewClipboardItem(pairingID, "Y2lwaGVydGV4dA==", "android-1", "text")
		require.NoError(t, err)

		assert.Equal(t, pairingID, item.PairingID)
		assert.Equal(t, "Y2lwaGVydGV4dA==", item.Content)
		assert.Equal(t, "android-1", item.SourceDeviceID)
		assert.Equal(t, "text", item.Type)
		assert.False(t, item.CreatedAt.IsZero())

		_, ok := NormalizeClipboardItemID(item.ID)
		assert.True(t, ok)
	})

	t.Run("content is not trimmed or interpreted", func(t *testing.T) {
		item, err := NewClipboardItem(pairingID, "  raw bytes  ", "android-1", "text")
		require.NoError(t, err)
		assert.Equal(t, "  raw bytes  ", item.Content)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewClipboardItem(pairingID, "", "android-1", "text")
		assert.Equal(t, ErrEmptyContent, err)
	})

	t.Run("rejects empty source device", func(t *testing.T) {
		_, err := NewClipboardItem(pairingID, "data", "", "text")
		assert.Equal(t, ErrEmptySourceDeviceID, err)
	})

	t.Run("rejects empty type", func(t *testing.T) {
		_, err := NewClipboardItem(pairingID, "data", "android-1", "")
		assert.Equal(t, ErrEmptyItemType, err)
	})
}
