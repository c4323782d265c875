package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kalenwallin/clipsync/internal/models"
)

// HealthHandler reports relay liveness. Clients probe this before falling
// back from WebSocket pushes to HTTP polling.
type HealthHandler struct {
	serviceName string
	database    string
}

// NewHealthHandler creates a HealthHandler that reports which storage
// backend the relay is running on
func NewHealthHandler(serviceName, database string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		database:    database,
	}
}

// HealthCheck returns the server health status
// @Summary Health check
// @Description Returns the relay's health status and active storage backend
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /api/health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:    "healthy",
		Service:   h.serviceName,
		Database:  h.database,
		Timestamp: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
