package repository

import (
	"context"
	"time"

	"github.com/kalenwallin/clipsync/internal/models"
)

// PairingRepo defines the interface for pairing persistence operations.
// All IDs passed in are assumed to be normalized by the caller.
type PairingRepo interface {
	// Create inserts a new pairing, first removing any existing pairing
	// (and its clipboard items) for either device. Unique indexes on active
	// device IDs guarantee two racing creates cannot both commit; the loser
	// retries and replaces the winner.
	Create(ctx context.Context, pairing *models.Pairing) error
	GetByID(ctx context.Context, id string) (*models.Pairing, error)
	GetActiveByMacID(ctx context.Context, macDeviceID string) (*models.Pairing, error)
	// GetActiveByMacIDSince returns the most recently created active pairing
	// for the Mac with createdAt >= since, or nil.
	GetActiveByMacIDSince(ctx context.Context, macDeviceID string, since time.Time) (*models.Pairing, error)
	// Delete removes the pairing and all clipboard items that reference it.
	// Deleting an unknown ID is a no-op and returns false.
	Delete(ctx context.Context, id string) (bool, error)
}

// ClipboardRepo defines the interface for clipboard item persistence
type ClipboardRepo interface {
	Add(ctx context.Context, item *models.ClipboardItem) error
	GetLatest(ctx context.Context, pairingID string) (*models.ClipboardItem, error)
	// GetHistory returns up to limit items for the pairing, newest first
	GetHistory(ctx context.Context, pairingID string, limit int) ([]*models.ClipboardItem, error)
	// DeleteForPairing removes all items for the pairing and returns the count
	DeleteForPairing(ctx context.Context, pairingID string) (int, error)
}
