package models

import "time"

// CreatePairingResult is returned after a pairing is created
type CreatePairingResult struct {
	PairingID string    `json:"pairingId"`
	CreatedAt time.Time `json:"createdAt"`
}

// WatchPairingResponse is returned by the pairing watch endpoint. Pairing is
// null while no qualifying pairing exists; pollers treat that as "not yet".
type WatchPairingResponse struct {
	Pairing *Pairing `json:"pairing"`
}

// ExistsResponse reports pairing liveness
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// SendResult is returned after a clipboard item is stored
type SendResult struct {
	ItemID    string    `json:"itemId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClipboardHistoryResponse is returned when listing clipboard history,
// most recent item first
type ClipboardHistoryResponse struct {
	Items []*ClipboardItem `json:"items"`
	Count int              `json:"count"`
}

// ClearResult reports how many clipboard items were deleted
type ClearResult struct {
	Deleted int `json:"deleted"`
}

// HealthResponse is returned by health check
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is returned on errors
type ErrorResponse struct {
	Error string `json:"error"`
}
