package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablestream/internal/services"
	"fablestream/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGamesHandler_Create(t *testing.T) {
	storage := services.NewMockStorage()
	handler := NewGamesHandler(storage, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/games", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var ws state.WorldState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ws))
	assert.NotEqual(t, uuid.Nil, ws.ID)

	stored, err := storage.LoadWorldState(context.Background(), ws.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestGamesHandler_Get(t *testing.T) {
	storage := services.NewMockStorage()
	ws := state.New()
	require.NoError(t, storage.SaveWorldState(context.Background(), ws.ID, ws))
	handler := NewGamesHandler(storage, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+ws.ID.String(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got state.WorldState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, ws.ID, got.ID)
}

func TestGamesHandler_GetNotFound(t *testing.T) {
	handler := NewGamesHandler(services.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGamesHandler_InvalidID(t *testing.T) {
	handler := NewGamesHandler(services.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games/not-a-uuid", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Invalid game ID")
}

func TestGamesHandler_Delete(t *testing.T) {
	storage := services.NewMockStorage()
	ws := state.New()
	require.NoError(t, storage.SaveWorldState(context.Background(), ws.ID, ws))
	handler := NewGamesHandler(storage, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/v1/games/"+ws.ID.String(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err := storage.LoadWorldState(context.Background(), ws.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestGamesHandler_MethodNotAllowed(t *testing.T) {
	handler := NewGamesHandler(services.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodPut, "/v1/games", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
