package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kalenwallin/clipsync/internal/models"
	"github.com/kalenwallin/clipsync/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Native clients only; no browser origin to check
		return true
	},
}

// subscribeMessage is the only client-to-server message the live channel
// understands
type subscribeMessage struct {
	Type  string `json:"type"` // "subscribe" or "unsubscribe"
	Topic string `json:"topic"`
}

// WebSocketHandler serves the live update channel. Clients subscribe to
// pairing:<pairingId> for clipboard and unpair events, or mac:<macDeviceId>
// while waiting for a pairing to be created.
type WebSocketHandler struct {
	hub *services.WebSocketHub
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *services.WebSocketHub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleConnection upgrades HTTP to WebSocket and manages the connection.
// Initial subscriptions can be given as query parameters (pairingId,
// macDeviceId); further ones arrive as subscribe messages.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := h.hub.NewClient(uuid.New().String(), conn)
	h.hub.Register(client)

	if rawID := r.URL.Query().Get("pairingId"); rawID != "" {
		if id, ok := models.NormalizePairingID(rawID); ok {
			h.hub.Subscribe(client, services.PairingTopic(id))
		}
	}
	if macDeviceID := r.URL.Query().Get("macDeviceId"); macDeviceID != "" {
		h.hub.Subscribe(client, services.MacTopic(macDeviceID))
	}

	go client.WritePump()
	client.ReadPump(h.handleMessage)
}

func (h *WebSocketHandler) handleMessage(client *services.WSClient, data []byte) {
	var msg subscribeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	if !validTopic(msg.Topic) {
		return
	}

	switch msg.Type {
	case "subscribe":
		h.hub.Subscribe(client, msg.Topic)
	case "unsubscribe":
		h.hub.Unsubscribe(client, msg.Topic)
	}
}

// validTopic gates client-chosen topics to the two known namespaces, with
// pairing topics required to carry a well-formed pairing ID
func validTopic(topic string) bool {
	if rawID, ok := strings.CutPrefix(topic, "pairing:"); ok {
		_, valid := models.NormalizePairingID(rawID)
		return valid
	}
	if macDeviceID, ok := strings.CutPrefix(topic, "mac:"); ok {
		return macDeviceID != ""
	}
	return false
}
