package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"fablestream/internal/services"
	"fablestream/pkg/state"
)

// GamesHandler manages game session lifecycle.
//
//	POST   /v1/games        create a session
//	GET    /v1/games/{id}   fetch the session's world state
//	DELETE /v1/games/{id}   remove a session
type GamesHandler struct {
	storage services.Storage
	logger  *slog.Logger
}

func NewGamesHandler(storage services.Storage, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost:
		h.create(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r)
	case r.Method == http.MethodDelete:
		h.delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.writeJSON(w, ErrorResponse{Error: "Method not allowed."})
	}
}

func (h *GamesHandler) create(w http.ResponseWriter, r *http.Request) {
	ws := state.New()
	if err := h.storage.SaveWorldState(r.Context(), ws.ID, ws); err != nil {
		h.logger.Error("Failed to save new game", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.writeJSON(w, ErrorResponse{Error: "Failed to create game. Please try again."})
		return
	}

	h.logger.Info("Game created", "game_id", ws.ID.String())
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, ws)
}

func (h *GamesHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	ws, err := h.storage.LoadWorldState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load game", "error", err, "game_id", id.String())
		w.WriteHeader(http.StatusInternalServerError)
		h.writeJSON(w, ErrorResponse{Error: "Failed to load game."})
		return
	}
	if ws == nil {
		w.WriteHeader(http.StatusNotFound)
		h.writeJSON(w, ErrorResponse{Error: "Game not found."})
		return
	}

	h.writeJSON(w, ws)
}

func (h *GamesHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	if err := h.storage.DeleteWorldState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete game", "error", err, "game_id", id.String())
		w.WriteHeader(http.StatusInternalServerError)
		h.writeJSON(w, ErrorResponse{Error: "Failed to delete game."})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// gameID extracts and validates the {id} path segment of /v1/games/{id}.
func (h *GamesHandler) gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		w.WriteHeader(http.StatusBadRequest)
		h.writeJSON(w, ErrorResponse{Error: "Invalid path. Expected /v1/games/{id}"})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(parts[2])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.writeJSON(w, ErrorResponse{Error: "Invalid game ID format."})
		return uuid.Nil, false
	}
	return id, true
}

func (h *GamesHandler) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", "error", err)
	}
}
