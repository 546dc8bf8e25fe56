package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/lorrc/glpi-dashboard-backend/internal/adapters/primary/http"
	"github.com/lorrc/glpi-dashboard-backend/internal/core/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	handler := httpAdapter.NewHealthHandler(nil, "1.0.0")
	rec := httptest.NewRecorder()
	handler.HandleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body httpAdapter.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

func TestHealthHandler_ReadinessHealthy(t *testing.T) {
	store := mocks.NewMockTicketStore()
	store.On("Ping", mock.Anything).Return(nil)

	handler := httpAdapter.NewHealthHandler(store, "1.0.0")
	rec := httptest.NewRecorder()
	handler.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body httpAdapter.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "healthy", body.Checks["ticket_store"].Status)
}

func TestHealthHandler_ReadinessStoreDown(t *testing.T) {
	store := mocks.NewMockTicketStore()
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	handler := httpAdapter.NewHealthHandler(store, "1.0.0")
	rec := httptest.NewRecorder()
	handler.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body httpAdapter.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["ticket_store"].Message)
}
