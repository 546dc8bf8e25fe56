package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/lorrc/glpi-dashboard-backend/internal/adapters/primary/http"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/domain"
	apperrors "github.com/lorrc/glpi-dashboard-backend/internal/core/errors"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDashboardHandler_Success(t *testing.T) {
	svc := mocks.NewMockSnapshotService()
	snap := domain.EmptySnapshot()
	snap.Timestamp = "2025-06-15 12:00:00"
	snap.TicketsStatus.TotalOpen = 3
	snap.TicketsStatus.TotalCreated = 10
	svc.On("BuildSnapshot", mock.Anything).Return(snap, nil)

	handler := httpAdapter.NewDashboardHandler(svc, discardLogger())
	rec := httptest.NewRecorder()
	handler.HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// The success flag sits flat next to the snapshot keys.
	assert.JSONEq(t, "true", string(body["success"]))
	assert.JSONEq(t, `"2025-06-15 12:00:00"`, string(body["timestamp"]))
	for _, key := range []string{
		"tickets_status", "tickets_priority", "tickets_category",
		"tickets_by_entity", "tickets_by_month", "tickets_technician",
		"technician_monthly_ranking", "resolution_time", "daily_comparison",
		"overdue_tickets", "satisfaction", "open_tickets_details",
		"resolved_by_technician_30_days", "resolved_by_technician_previous_month",
		"period_last_30_days", "period_previous_month",
	} {
		assert.Contains(t, body, key)
	}

	var status domain.StatusSummary
	require.NoError(t, json.Unmarshal(body["tickets_status"], &status))
	assert.Equal(t, 3, status.TotalOpen)
	assert.Equal(t, 10, status.TotalCreated)

	// Empty list sections are [], never null.
	assert.JSONEq(t, "[]", string(body["tickets_priority"]))
	assert.JSONEq(t, "[]", string(body["open_tickets_details"]))

	svc.AssertExpectations(t)
}

func TestDashboardHandler_StoreUnavailable(t *testing.T) {
	svc := mocks.NewMockSnapshotService()
	svc.On("BuildSnapshot", mock.Anything).
		Return(nil, apperrors.NewStoreUnavailableError("connection refused"))

	handler := httpAdapter.NewDashboardHandler(svc, discardLogger())
	rec := httptest.NewRecorder()
	handler.HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body httpAdapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestDashboardHandler_UnexpectedError(t *testing.T) {
	svc := mocks.NewMockSnapshotService()
	svc.On("BuildSnapshot", mock.Anything).Return(nil, errors.New("boom"))

	handler := httpAdapter.NewDashboardHandler(svc, discardLogger())
	rec := httptest.NewRecorder()
	handler.HandleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body httpAdapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}
