package http

import (
	"encoding/json"
	"net/http"

	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
)

// SnapshotResponse is the wire envelope the display client consumes:
// the success flag sits next to the snapshot's own keys in one flat
// JSON object, exactly as the stock dashboard expects.
type SnapshotResponse struct {
	Success bool `json:"success"`
	domain.Snapshot
}

// ErrorResponse is the envelope for a failed build: no partial snapshot
// fields, just the flag and a human-readable message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The header has already been sent; nothing useful to do.
		_ = err
	}
}

// WriteSnapshot writes a successful snapshot envelope
func WriteSnapshot(w http.ResponseWriter, snap *domain.Snapshot) {
	WriteJSON(w, http.StatusOK, SnapshotResponse{Success: true, Snapshot: *snap})
}

// WriteError writes a failure envelope
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Success: false, Error: message})
}
