package services

import (
	"context"
	"time"

	"github.com/kalenwallin/clipsync/internal/models"
	"github.com/kalenwallin/clipsync/internal/observability"
	"github.com/kalenwallin/clipsync/internal/repository"
)

// PairingService owns the pairing lifecycle: creation (replace-on-create),
// lookup, liveness checks, and the watch query the Mac polls after showing
// a pairing code. It holds no state of its own; every call re-derives
// correctness from storage.
type PairingService struct {
	pairings repository.PairingRepo
}

// NewPairingService creates a new PairingService
func NewPairingService(pairings repository.PairingRepo) *PairingService {
	return &PairingService{pairings: pairings}
}

// Create establishes a new pairing between the two devices. Any prior
// pairing for either device is deleted together with its clipboard items,
// so re-scanning a pairing code is always safe: a device can only ever
// belong to one pairing.
func (s *PairingService) Create(ctx context.Context, req models.CreatePairingRequest) (*models.Pairing, error) {
	ctx, span := observability.StartServiceSpan(ctx, "pairing", "create")
	defer span.End()

	pairing, err := models.NewPairing(req.AndroidDeviceID, req.AndroidDeviceName, req.MacDeviceID, req.MacDeviceName)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if err := s.pairings.Create(ctx, pairing); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return pairing, nil
}

// GetByIDString looks up a pairing by a client-supplied ID string.
// A malformed or unknown ID yields nil, not an error: clients poll with
// possibly stale IDs as a normal mode of operation.
func (s *PairingService) GetByIDString(ctx context.Context, rawID string) (*models.Pairing, error) {
	ctx, span := observability.StartServiceSpan(ctx, "pairing", "get")
	defer span.End()

	id, ok := models.NormalizePairingID(rawID)
	if !ok {
		return nil, nil
	}
	pairing, err := s.pairings.GetByID(ctx, id)
	observability.RecordError(span, err)
	return pairing, err
}

// GetByMacID returns the active pairing for the Mac device, or nil
func (s *PairingService) GetByMacID(ctx context.Context, macDeviceID string) (*models.Pairing, error) {
	ctx, span := observability.StartServiceSpan(ctx, "pairing", "getByMacId")
	defer span.End()

	pairing, err := s.pairings.GetActiveByMacID(ctx, macDeviceID)
	observability.RecordError(span, err)
	return pairing, err
}

// WatchForPairing returns the most recent active pairing for the Mac with
// createdAt >= since, or nil while none exists. The Mac polls this after
// displaying its pairing code, passing the time it started waiting.
func (s *PairingService) WatchForPairing(ctx context.Context, macDeviceID string, since time.Time) (*models.Pairing, error) {
	ctx, span := observability.StartServiceSpan(ctx, "pairing", "watchForPairing")
	defer span.End()

	pairing, err := s.pairings.GetActiveByMacIDSince(ctx, macDeviceID, since)
	observability.RecordError(span, err)
	return pairing, err
}

// Exists reports whether the ID resolves to an active pairing. Used by
// either side to detect unpairing.
func (s *PairingService) Exists(ctx context.Context, rawID string) (bool, error) {
	ctx, span := observability.StartServiceSpan(ctx, "pairing", "exists")
	defer span.End()

	id, ok := models.NormalizePairingID(rawID)
	if !ok {
		return false, nil
	}
	pairing, err := s.pairings.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return false, err
	}
	return pairing != nil && pairing.IsActive(), nil
}

// Remove unpairs: it deletes the pairing and every clipboard item that
// references it, items first. Removing a malformed or already-removed ID is
// a no-op. Returns the deleted pairing, or nil if nothing was removed.
func (s *PairingService) Remove(ctx context.Context, rawID string) (*models.Pairing, error) {
	ctx, span := observability.StartServiceSpan(ctx, "pairing", "remove")
	defer span.End()

	id, ok := models.NormalizePairingID(rawID)
	if !ok {
		return nil, nil
	}

	pairing, err := s.pairings.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if pairing == nil {
		return nil, nil
	}

	removed, err := s.pairings.Delete(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if !removed {
		return nil, nil
	}
	return pairing, nil
}
