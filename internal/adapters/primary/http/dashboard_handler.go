package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/lorrc/glpi-dashboard-backend/internal/core/errors"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/ports"
)

// DashboardHandler serves the KPI snapshot to the polling display
// client. One GET, one freshly built snapshot; the client re-polls on
// its own schedule and treats success:false as retryable.
type DashboardHandler struct {
	snapshots ports.SnapshotService
	logger    *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(snapshots ports.SnapshotService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{snapshots: snapshots, logger: logger}
}

// HandleSnapshot builds and serves one snapshot.
func (h *DashboardHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshots.BuildSnapshot(r.Context())
	if err != nil {
		requestID := GetRequestID(r.Context())
		h.logger.Error("snapshot request failed",
			"request_id", requestID,
			"error", err,
		)

		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			WriteError(w, http.StatusServiceUnavailable, "Ticket store is unavailable. Please try again later.")
			return
		}
		WriteError(w, http.StatusInternalServerError, "An unexpected error occurred while building the snapshot.")
		return
	}

	WriteSnapshot(w, snap)
}

// RegisterRoutes registers dashboard routes.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleSnapshot)
}
