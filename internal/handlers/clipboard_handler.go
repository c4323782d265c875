package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kalenwallin/clipsync/internal/models"
	"github.com/kalenwallin/clipsync/internal/services"
)

// ClipboardHandler handles clipboard relay endpoints
type ClipboardHandler struct {
	clipboardService *services.ClipboardService
	hub              *services.WebSocketHub
}

// NewClipboardHandler creates a new ClipboardHandler
func NewClipboardHandler(clipboardService *services.ClipboardService, hub *services.WebSocketHub) *ClipboardHandler {
	return &ClipboardHandler{
		clipboardService: clipboardService,
		hub:              hub,
	}
}

// Send stores a clipboard item for the pairing
// @Summary Send clipboard item
// @Description Append an encrypted clipboard payload. Fails if the pairing does not resolve or is not active; a silently dropped send would be silent data loss.
// @Tags clipboard
// @Accept json
// @Produce json
// @Param pairingId path string true "Pairing ID"
// @Param request body models.SendClipboardRequest true "Encrypted content plus metadata"
// @Success 201 {object} models.SendResult
// @Failure 400 {object} models.ErrorResponse "Malformed pairing ID or invalid body"
// @Failure 404 {object} models.ErrorResponse "Pairing not found"
// @Failure 409 {object} models.ErrorResponse "Pairing not active"
// @Failure 413 {object} models.ErrorResponse "Content too large"
// @Security ApiKeyAuth
// @Router /api/clipboard/{pairingId}/items [post]
func (h *ClipboardHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendClipboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	item, err := h.clipboardService.Send(r.Context(), chi.URLParam(r, "pairingId"), req)
	if err != nil {
		switch err {
		case models.ErrInvalidPairingID:
			h.respondError(w, http.StatusBadRequest, "Invalid pairing ID.")
		case models.ErrPairingNotFound:
			h.respondError(w, http.StatusNotFound, "Pairing not found.")
		case models.ErrPairingNotActive:
			h.respondError(w, http.StatusConflict, "Pairing is not active.")
		case models.ErrContentTooLarge:
			h.respondError(w, http.StatusRequestEntityTooLarge, "Content exceeds maximum allowed size.")
		default:
			if _, ok := err.(models.ClipboardError); ok {
				h.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("Error sending clipboard item: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Database error.")
		}
		return
	}

	// Push to the other device; payload is still ciphertext
	h.hub.BroadcastToTopic(services.PairingTopic(item.PairingID), services.WSMessage{
		Type:    services.EventClipboardNew,
		Payload: item,
	})

	h.respondJSON(w, http.StatusCreated, models.SendResult{
		ItemID:    item.ID,
		CreatedAt: item.CreatedAt,
	})
}

// GetLatest returns the most recent clipboard item for the pairing
// @Summary Get latest clipboard item
// @Tags clipboard
// @Produce json
// @Param pairingId path string true "Pairing ID"
// @Success 200 {object} models.ClipboardItem
// @Failure 404 {object} models.ErrorResponse "No items"
// @Security ApiKeyAuth
// @Router /api/clipboard/{pairingId}/items/latest [get]
func (h *ClipboardHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	item, err := h.clipboardService.GetLatest(r.Context(), chi.URLParam(r, "pairingId"))
	if err != nil {
		log.Printf("Error getting latest clipboard item: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	if item == nil {
		h.respondError(w, http.StatusNotFound, "No clipboard items found.")
		return
	}
	h.respondJSON(w, http.StatusOK, item)
}

// GetHistory returns recent clipboard items, newest first
// @Summary Get clipboard history
// @Tags clipboard
// @Produce json
// @Param pairingId path string true "Pairing ID"
// @Param limit query integer false "Maximum items to return (default 50, clamped server-side)"
// @Success 200 {object} models.ClipboardHistoryResponse
// @Security ApiKeyAuth
// @Router /api/clipboard/{pairingId}/items [get]
func (h *ClipboardHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	items, err := h.clipboardService.GetHistory(r.Context(), chi.URLParam(r, "pairingId"), limit)
	if err != nil {
		log.Printf("Error getting clipboard history: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	if items == nil {
		items = []*models.ClipboardItem{}
	}
	h.respondJSON(w, http.StatusOK, models.ClipboardHistoryResponse{
		Items: items,
		Count: len(items),
	})
}

// Clear deletes all clipboard items for the pairing
// @Summary Clear clipboard history
// @Description Delete every item for the pairing, leaving the pairing itself intact. Returns the number deleted.
// @Tags clipboard
// @Produce json
// @Param pairingId path string true "Pairing ID"
// @Success 200 {object} models.ClearResult
// @Security ApiKeyAuth
// @Router /api/clipboard/{pairingId}/items [delete]
func (h *ClipboardHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.clipboardService.Clear(r.Context(), chi.URLParam(r, "pairingId"))
	if err != nil {
		log.Printf("Error clearing clipboard history: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}
	h.respondJSON(w, http.StatusOK, models.ClearResult{Deleted: deleted})
}

func (h *ClipboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ClipboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.ErrorResponse{Error: message})
}
