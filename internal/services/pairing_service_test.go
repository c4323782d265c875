package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalenwallin/clipsync/internal/models"
	"github.com/kalenwallin/clipsync/internal/repository"
)

func newTestServices(t *testing.T) (*PairingService, *ClipboardService, *sql.DB) {
	t.Helper()

	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a distinct database; pin the pool to
	// the one that ran the schema
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	pairings := repository.NewPairingRepository(db)
	items := repository.NewClipboardRepository(db)

	pairingService := NewPairingService(pairings)
	clipboardService := NewClipboardService(pairings, items, 1<<20, 50, 500)
	return pairingService, clipboardService, db
}

func createPairing(t *testing.T, svc *PairingService, androidID, macID string) *models.Pairing {
	t.Helper()
	p, err := svc.Create(context.Background(), models.CreatePairingRequest{
		AndroidDeviceID:   androidID,
		AndroidDeviceName: "Phone",
		MacDeviceID:       macID,
		MacDeviceName:     "Laptop",
	})
	require.NoError(t, err)
	return p
}

func TestPairingService_Create(t *testing.T) {
	svc, _, db := newTestServices(t)
	ctx := context.Background()

	t.Run("returns a normalized pairing id", func(t *testing.T) {
		p := createPairing(t, svc, "android-1", "mac-1")
		_, ok := models.NormalizePairingID(p.ID)
		assert.True(t, ok)
		assert.True(t, p.IsActive())
	})

	t.Run("rejects missing device ids", func(t *testing.T) {
		_, err := svc.Create(ctx, models.CreatePairingRequest{
			AndroidDeviceName: "Phone",
			MacDeviceID:       "mac-1",
			MacDeviceName:     "Laptop",
		})
		assert.Equal(t, models.ErrEmptyAndroidDeviceID, err)
	})

	t.Run("two sequential creates leave one active pairing per device", func(t *testing.T) {
		createPairing(t, svc, "android-dup", "mac-dup")
		p2 := createPairing(t, svc, "android-dup", "mac-dup")

		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM pairings WHERE android_device_id = $1`, "android-dup").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		active, err := svc.GetByMacID(ctx, "mac-dup")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, p2.ID, active.ID)
	})
}

func TestPairingService_GetByIDString(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	p := createPairing(t, svc, "android-1", "mac-1")

	t.Run("resolves valid id", func(t *testing.T) {
		got, err := svc.GetByIDString(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("malformed id is absent, not an error", func(t *testing.T) {
		got, err := svc.GetByIDString(ctx, "garbage")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown id is absent", func(t *testing.T) {
		got, err := svc.GetByIDString(ctx, models.NewPairingID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPairingService_WatchForPairing(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	t.Run("absent before any pairing exists", func(t *testing.T) {
		got, err := svc.WatchForPairing(ctx, "mac-1", time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	p := createPairing(t, svc, "android-1", "mac-1")

	t.Run("returns pairing created after since", func(t *testing.T) {
		got, err := svc.WatchForPairing(ctx, "mac-1", p.CreatedAt.Add(-time.Minute))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("older pairing does not qualify", func(t *testing.T) {
		got, err := svc.WatchForPairing(ctx, "mac-1", p.CreatedAt.Add(time.Minute))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("re-pairing becomes visible to a fresh watch", func(t *testing.T) {
		since := time.Now().UTC()
		p2 := createPairing(t, svc, "android-1", "mac-1")

		got, err := svc.WatchForPairing(ctx, "mac-1", since)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p2.ID, got.ID)
	})
}

func TestPairingService_ExistsAndRemove(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	p := createPairing(t, svc, "android-1", "mac-1")

	t.Run("exists for active pairing", func(t *testing.T) {
		exists, err := svc.Exists(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("exists is false for malformed id", func(t *testing.T) {
		exists, err := svc.Exists(ctx, "ci_not-even-a-pairing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("remove returns the deleted pairing", func(t *testing.T) {
		removed, err := svc.Remove(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, p.ID, removed.ID)

		exists, err := svc.Exists(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		removed, err := svc.Remove(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, removed)
	})

	t.Run("remove of malformed id is a no-op", func(t *testing.T) {
		removed, err := svc.Remove(ctx, "???")
		require.NoError(t, err)
		assert.Nil(t, removed)
	})
}
