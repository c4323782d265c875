package services

import (
	"context"

	"github.com/kalenwallin/clipsync/internal/models"
	"github.com/kalenwallin/clipsync/internal/observability"
	"github.com/kalenwallin/clipsync/internal/repository"
)

// ClipboardService relays clipboard items within one pairing: append,
// latest-item retrieval, bounded history, and bulk clear. Sends only succeed
// against an active pairing; reads against a dead ID degrade to empty.
type ClipboardService struct {
	pairings            repository.PairingRepo
	items               repository.ClipboardRepo
	maxContentBytes     int
	defaultHistoryLimit int
	maxHistoryLimit     int
}

// NewClipboardService creates a new ClipboardService
func NewClipboardService(pairings repository.PairingRepo, items repository.ClipboardRepo, maxContentBytes, defaultHistoryLimit, maxHistoryLimit int) *ClipboardService {
	return &ClipboardService{
		pairings:            pairings,
		items:               items,
		maxContentBytes:     maxContentBytes,
		defaultHistoryLimit: defaultHistoryLimit,
		maxHistoryLimit:     maxHistoryLimit,
	}
}

// Send stores a clipboard item for the pairing. Unlike the read path this
// fails loudly: silently dropping a clipboard write would be silent data
// loss. No dedup is performed; every call appends a new item.
func (s *ClipboardService) Send(ctx context.Context, rawPairingID string, req models.SendClipboardRequest) (*models.ClipboardItem, error) {
	ctx, span := observability.StartServiceSpan(ctx, "clipboard", "send")
	defer span.End()

	id, ok := models.NormalizePairingID(rawPairingID)
	if !ok {
		return nil, models.ErrInvalidPairingID
	}

	// Bound the transport size only; the content itself is ciphertext and
	// is never inspected.
	if s.maxContentBytes > 0 && len(req.Content) > s.maxContentBytes {
		return nil, models.ErrContentTooLarge
	}

	pairing, err := s.pairings.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if pairing == nil {
		return nil, models.ErrPairingNotFound
	}
	if !pairing.IsActive() {
		return nil, models.ErrPairingNotActive
	}

	item, err := models.NewClipboardItem(id, req.Content, req.SourceDeviceID, req.Type)
	if err != nil {
		return nil, err
	}

	if err := s.items.Add(ctx, item); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return item, nil
}

// GetLatest returns the most recently sent item for the pairing, or nil.
// Malformed IDs yield nil silently, mirroring the no-throw read policy.
func (s *ClipboardService) GetLatest(ctx context.Context, rawPairingID string) (*models.ClipboardItem, error) {
	ctx, span := observability.StartServiceSpan(ctx, "clipboard", "getLatest")
	defer span.End()

	id, ok := models.NormalizePairingID(rawPairingID)
	if !ok {
		return nil, nil
	}
	item, err := s.items.GetLatest(ctx, id)
	observability.RecordError(span, err)
	return item, err
}

// GetHistory returns up to limit items for the pairing, newest first.
// limit <= 0 falls back to the default (50); values above the configured
// maximum are clamped to bound response size.
func (s *ClipboardService) GetHistory(ctx context.Context, rawPairingID string, limit int) ([]*models.ClipboardItem, error) {
	ctx, span := observability.StartServiceSpan(ctx, "clipboard", "getHistory")
	defer span.End()

	id, ok := models.NormalizePairingID(rawPairingID)
	if !ok {
		return nil, nil
	}

	if limit <= 0 {
		limit = s.defaultHistoryLimit
	}
	if s.maxHistoryLimit > 0 && limit > s.maxHistoryLimit {
		limit = s.maxHistoryLimit
	}

	items, err := s.items.GetHistory(ctx, id, limit)
	observability.RecordError(span, err)
	return items, err
}

// Clear deletes all items for the pairing and returns the count deleted.
// The pairing itself is untouched. Malformed IDs clear nothing and
// return zero.
func (s *ClipboardService) Clear(ctx context.Context, rawPairingID string) (int, error) {
	ctx, span := observability.StartServiceSpan(ctx, "clipboard", "clear")
	defer span.End()

	id, ok := models.NormalizePairingID(rawPairingID)
	if !ok {
		return 0, nil
	}
	count, err := s.items.DeleteForPairing(ctx, id)
	observability.RecordError(span, err)
	return count, err
}
