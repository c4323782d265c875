package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalenwallin/clipsync/internal/models"
)

func TestClipboardRepository_AddAndGetLatest(t *testing.T) {
	db := newTestDB(t)
	pairings := NewPairingRepository(db)
	items := NewClipboardRepository(db)
	ctx := context.Background()

	p := mustPairing(t, "android-1", "mac-1")
	require.NoError(t, pairings.Create(ctx, p))

	t.Run("latest on empty pairing is nil", func(t *testing.T) {
		got, err := items.GetLatest(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("latest reflects insertion order", func(t *testing.T) {
		var lastID string
		for i := 0; i < 3; i++ {
			item, err := models.NewClipboardItem(p.ID, fmt.Sprintf("cipher-%d", i), "android-1", "text")
			require.NoError(t, err)
			require.NoError(t, items.Add(ctx, item))
			lastID = item.ID
		}

		got, err := items.GetLatest(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, lastID, got.ID)
		assert.Equal(t, "cipher-2", got.Content)
	})

	t.Run("identical content still appends", func(t *testing.T) {
		first, err := models.NewClipboardItem(p.ID, "same", "android-1", "text")
		require.NoError(t, err)
		require.NoError(t, items.Add(ctx, first))

		second, err := models.NewClipboardItem(p.ID, "same", "android-1", "text")
		require.NoError(t, err)
		require.NoError(t, items.Add(ctx, second))

		history, err := items.GetHistory(ctx, p.ID, 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})
}

func TestClipboardRepository_GetHistory(t *testing.T) {
	db := newTestDB(t)
	pairings := NewPairingRepository(db)
	items := NewClipboardRepository(db)
	ctx := context.Background()

	p := mustPairing(t, "android-1", "mac-1")
	require.NoError(t, pairings.Create(ctx, p))

	other := mustPairing(t, "android-2", "mac-2")
	require.NoError(t, pairings.Create(ctx, other))

	var ids []string
	for i := 0; i < 10; i++ {
		item, err := models.NewClipboardItem(p.ID, fmt.Sprintf("cipher-%d", i), "android-1", "text")
		require.NoError(t, err)
		require.NoError(t, items.Add(ctx, item))
		ids = append(ids, item.ID)
	}

	// Item for another pairing must never leak into this history
	foreign, err := models.NewClipboardItem(other.ID, "foreign", "android-2", "text")
	require.NoError(t, err)
	require.NoError(t, items.Add(ctx, foreign))

	t.Run("returns all items newest first", func(t *testing.T) {
		history, err := items.GetHistory(ctx, p.ID, 50)
		require.NoError(t, err)
		require.Len(t, history, 10)
		for i, item := range history {
			assert.Equal(t, ids[len(ids)-1-i], item.ID)
		}
	})

	t.Run("limit caps result count", func(t *testing.T) {
		history, err := items.GetHistory(ctx, p.ID, 3)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, ids[9], history[0].ID)
		assert.Equal(t, ids[7], history[2].ID)
	})

	t.Run("unknown pairing yields empty", func(t *testing.T) {
		history, err := items.GetHistory(ctx, models.NewPairingID(), 50)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestClipboardRepository_DeleteForPairing(t *testing.T) {
	db := newTestDB(t)
	pairings := NewPairingRepository(db)
	items := NewClipboardRepository(db)
	ctx := context.Background()

	p := mustPairing(t, "android-1", "mac-1")
	require.NoError(t, pairings.Create(ctx, p))

	for i := 0; i < 4; i++ {
		item, err := models.NewClipboardItem(p.ID, fmt.Sprintf("cipher-%d", i), "android-1", "text")
		require.NoError(t, err)
		require.NoError(t, items.Add(ctx, item))
	}

	t.Run("returns deleted count", func(t *testing.T) {
		count, err := items.DeleteForPairing(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		history, err := items.GetHistory(ctx, p.ID, 50)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("pairing itself survives", func(t *testing.T) {
		got, err := pairings.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("second delete reports zero", func(t *testing.T) {
		count, err := items.DeleteForPairing(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
