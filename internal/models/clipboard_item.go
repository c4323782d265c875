package models

import (
	"strings"
	"time"
)

// ClipboardItem is one relayed clipboard payload. Content is ciphertext
// produced by the sending client (base64 transport encoding included); the
// server stores it untouched and must never parse or log it.
type ClipboardItem struct {
	ID             string    `json:"id"`
	PairingID      string    `json:"pairingId"`
	Content        string    `json:"content"`
	SourceDeviceID string    `json:"sourceDeviceId"`
	Type           string    `json:"type"` // opaque tag from the client, e.g. "text" or "image"
	CreatedAt      time.Time `json:"createdAt"`
	Seq            int64     `json:"-"` // storage-assigned insertion order
}

// SendClipboardRequest is the request body for sending a clipboard item
type SendClipboardRequest struct {
	Content        string `json:"content"`
	SourceDeviceID string `json:"sourceDeviceId"`
	Type           string `json:"type"`
}

// NewClipboardItem creates a clipboard item scoped to the given pairing.
// Items are immutable once created.
func NewClipboardItem(pairingID, content, sourceDeviceID, itemType string) (*ClipboardItem, error) {
	sourceDeviceID = strings.TrimSpace(sourceDeviceID)
	itemType = strings.TrimSpace(itemType)

	if content == "" {
		return nil, ErrEmptyContent
	}
	if sourceDeviceID == "" {
		return nil, ErrEmptySourceDeviceID
	}
	if itemType == "" {
		return nil, ErrEmptyItemType
	}

	return &ClipboardItem{
		ID:             NewClipboardItemID(),
		PairingID:      pairingID,
		Content:        content,
		SourceDeviceID: sourceDeviceID,
		Type:           itemType,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// Clipboard errors
var (
	ErrEmptyContent        = ClipboardError{"content cannot be empty"}
	ErrContentTooLarge     = ClipboardError{"content exceeds maximum allowed size"}
	ErrEmptySourceDeviceID = ClipboardError{"source device id cannot be empty"}
	ErrEmptyItemType       = ClipboardError{"item type cannot be empty"}
)

type ClipboardError struct {
	Message string
}

func (e ClipboardError) Error() string {
	return e.Message
}
