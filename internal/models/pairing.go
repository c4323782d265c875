package models

import (
	"strings"
	"time"
)

// PairingStatusActive is the only status ever written. A pairing is either
// active or deleted; unpairing and re-pairing both remove the old record
// outright instead of flipping a flag.
const PairingStatusActive = "active"

// Pairing binds one Android device to one Mac. At most one pairing may exist
// per device ID on either side; creating a new one replaces the old.
type Pairing struct {
	ID                string    `json:"id"`
	AndroidDeviceID   string    `json:"androidDeviceId"`
	AndroidDeviceName string    `json:"androidDeviceName"`
	MacDeviceID       string    `json:"macDeviceId"`
	MacDeviceName     string    `json:"macDeviceName"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CreatePairingRequest is the request body for creating a pairing
type CreatePairingRequest struct {
	AndroidDeviceID   string `json:"androidDeviceId"`
	AndroidDeviceName string `json:"androidDeviceName"`
	MacDeviceID       string `json:"macDeviceId"`
	MacDeviceName     string `json:"macDeviceName"`
}

// NewPairing creates a new active pairing between the two devices
func NewPairing(androidDeviceID, androidDeviceName, macDeviceID, macDeviceName string) (*Pairing, error) {
	androidDeviceID = strings.TrimSpace(androidDeviceID)
	androidDeviceName = strings.TrimSpace(androidDeviceName)
	macDeviceID = strings.TrimSpace(macDeviceID)
	macDeviceName = strings.TrimSpace(macDeviceName)

	if androidDeviceID == "" {
		return nil, ErrEmptyAndroidDeviceID
	}
	if macDeviceID == "" {
		return nil, ErrEmptyMacDeviceID
	}
	if androidDeviceName == "" || macDeviceName == "" {
		return nil, ErrEmptyDeviceName
	}

	return &Pairing{
		ID:                NewPairingID(),
		AndroidDeviceID:   androidDeviceID,
		AndroidDeviceName: androidDeviceName,
		MacDeviceID:       macDeviceID,
		MacDeviceName:     macDeviceName,
		Status:            PairingStatusActive,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// IsActive returns true if the pairing can receive clipboard sends
func (p *Pairing) IsActive() bool {
	return p.Status == PairingStatusActive
}

// Pairing errors
var (
	ErrEmptyAndroidDeviceID = PairingError{"android device id cannot be empty"}
	ErrEmptyMacDeviceID     = PairingError{"mac device id cannot be empty"}
	ErrEmptyDeviceName      = PairingError{"device name cannot be empty"}
	ErrInvalidPairingID     = PairingError{"invalid pairing id"}
	ErrPairingNotFound      = PairingError{"pairing not found"}
	ErrPairingNotActive     = PairingError{"pairing is not active"}
)

type PairingError struct {
	Message string
}

func (e PairingError) Error() string {
	return e.Message
}
