package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kalenwallin/clipsync/internal/models"
	"github.com/kalenwallin/clipsync/internal/services"
)

// PairingHandler handles pairing lifecycle endpoints
type PairingHandler struct {
	pairingService *services.PairingService
	hub            *services.WebSocketHub
}

// NewPairingHandler creates a new PairingHandler
func NewPairingHandler(pairingService *services.PairingService, hub *services.WebSocketHub) *PairingHandler {
	return &PairingHandler{
		pairingService: pairingService,
		hub:            hub,
	}
}

// Create establishes a new pairing
// @Summary Create pairing
// @Description Pair an Android device with a Mac. Any prior pairing for either device is replaced, including its clipboard items.
// @Tags pairings
// @Accept json
// @Produce json
// @Param request body models.CreatePairingRequest true "Device identifiers and display names"
// @Success 201 {object} models.CreatePairingResult
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Security ApiKeyAuth
// @Router /api/pairings [post]
func (h *PairingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePairingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	pairing, err := h.pairingService.Create(r.Context(), req)
	if err != nil {
		if _, ok := err.(models.PairingError); ok {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating pairing: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	// Wake up the Mac that is polling/listening for this pairing
	h.hub.BroadcastToTopic(services.MacTopic(pairing.MacDeviceID), services.WSMessage{
		Type:    services.EventPairingCreated,
		Payload: pairing,
	})

	h.respondJSON(w, http.StatusCreated, models.CreatePairingResult{
		PairingID: pairing.ID,
		CreatedAt: pairing.CreatedAt,
	})
}

// GetByID returns a pairing by its ID string
// @Summary Get pairing
// @Description Look up a pairing by ID. Malformed IDs are treated as not found.
// @Tags pairings
// @Produce json
// @Param id path string true "Pairing ID"
// @Success 200 {object} models.Pairing
// @Failure 404 {object} models.ErrorResponse "Pairing not found"
// @Security ApiKeyAuth
// @Router /api/pairings/{id} [get]
func (h *PairingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	pairing, err := h.pairingService.GetByIDString(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("Error getting pairing: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	if pairing == nil {
		h.respondError(w, http.StatusNotFound, "Pairing not found.")
		return
	}
	h.respondJSON(w, http.StatusOK, pairing)
}

// GetByMacID returns the active pairing for a Mac device
// @Summary Get pairing by Mac device
// @Tags pairings
// @Produce json
// @Param macDeviceId path string true "Mac device ID"
// @Success 200 {object} models.Pairing
// @Failure 404 {object} models.ErrorResponse "No active pairing"
// @Security ApiKeyAuth
// @Router /api/pairings/by-mac/{macDeviceId} [get]
func (h *PairingHandler) GetByMacID(w http.ResponseWriter, r *http.Request) {
	pairing, err := h.pairingService.GetByMacID(r.Context(), chi.URLParam(r, "macDeviceId"))
	if err != nil {
		log.Printf("Error getting pairing by mac id: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	if pairing == nil {
		h.respondError(w, http.StatusNotFound, "No active pairing for this device.")
		return
	}
	h.respondJSON(w, http.StatusOK, pairing)
}

// Watch returns the most recent active pairing created since a timestamp
// @Summary Watch for pairing
// @Description Polled by the Mac after displaying a pairing code. Returns a null pairing until one is created at or after the given time.
// @Tags pairings
// @Produce json
// @Param macDeviceId query string true "Mac device ID"
// @Param since query integer false "Unix milliseconds; only pairings created at or after this instant qualify"
// @Success 200 {object} models.WatchPairingResponse
// @Failure 400 {object} models.ErrorResponse "Missing macDeviceId"
// @Security ApiKeyAuth
// @Router /api/pairings/watch [get]
func (h *PairingHandler) Watch(w http.ResponseWriter, r *http.Request) {
	macDeviceID := r.URL.Query().Get("macDeviceId")
	if macDeviceID == "" {
		h.respondError(w, http.StatusBadRequest, "macDeviceId query parameter required.")
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "since must be a unix millisecond timestamp.")
			return
		}
		since = time.UnixMilli(millis).UTC()
	}

	pairing, err := h.pairingService.WatchForPairing(r.Context(), macDeviceID, since)
	if err != nil {
		log.Printf("Error watching for pairing: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	h.respondJSON(w, http.StatusOK, models.WatchPairingResponse{Pairing: pairing})
}

// Exists reports whether a pairing is still active
// @Summary Check pairing liveness
// @Tags pairings
// @Produce json
// @Param id path string true "Pairing ID"
// @Success 200 {object} models.ExistsResponse
// @Security ApiKeyAuth
// @Router /api/pairings/{id}/exists [get]
func (h *PairingHandler) Exists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.pairingService.Exists(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("Error checking pairing: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	h.respondJSON(w, http.StatusOK, models.ExistsResponse{Exists: exists})
}

// Remove unpairs the devices
// @Summary Remove pairing
// @Description Delete the pairing and all its clipboard items. Removing an unknown or malformed ID is a no-op.
// @Tags pairings
// @Param id path string true "Pairing ID"
// @Success 204 "Removed (or nothing to remove)"
// @Security ApiKeyAuth
// @Router /api/pairings/{id} [delete]
func (h *PairingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	pairing, err := h.pairingService.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("Error removing pairing: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	if pairing != nil {
		h.hub.BroadcastToTopic(services.PairingTopic(pairing.ID), services.WSMessage{
			Type:    services.EventPairingRemoved,
			Payload: map[string]string{"pairingId": pairing.ID},
		})
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PairingHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *PairingHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.ErrorResponse{Error: message})
}
