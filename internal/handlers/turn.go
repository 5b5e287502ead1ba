package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fablestream/internal/worker"
	"fablestream/pkg/chat"
)

const turnTimeout = 120 * time.Second

// TurnHandler plays one turn of a game session.
//
//	POST /v1/games/{id}/turn
//
// Narration is streamed to subscribers over the events channel while the
// turn runs; the response body carries the finalized result.
type TurnHandler struct {
	processor *worker.TurnProcessor
	logger    *slog.Logger
}

func NewTurnHandler(processor *worker.TurnProcessor, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.writeJSON(w, ErrorResponse{Error: "Method not allowed. Only POST is supported."})
		return
	}

	// Expected: /v1/games/{id}/turn
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[3] != "turn" {
		w.WriteHeader(http.StatusBadRequest)
		h.writeJSON(w, ErrorResponse{Error: "Invalid path. Expected /v1/games/{id}/turn"})
		return
	}
	gameID, err := uuid.Parse(parts[2])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.writeJSON(w, ErrorResponse{Error: "Invalid game ID format."})
		return
	}

	var request chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		h.writeJSON(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'message' field."})
		return
	}
	if request.Message == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.writeJSON(w, ErrorResponse{Error: "Message cannot be empty."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), turnTimeout)
	defer cancel()

	result, err := h.processor.ProcessTurn(ctx, gameID, request.Message, nil)
	if err != nil {
		h.logger.Error("Turn processing failed", "error", err, "game_id", gameID.String())
		w.WriteHeader(http.StatusInternalServerError)
		h.writeJSON(w, ErrorResponse{Error: "Failed to process turn. Please try again."})
		return
	}

	response := chat.TurnResponse{
		GameID:           gameID,
		Narration:        result.Narration,
		ValidationIssues: result.Issues,
		RegeneratedArt:   result.RegeneratedArt,
		RegeneratedAudio: result.RegeneratedAudio,
		ImageURL:         result.ImageURL,
		MusicURL:         result.MusicURL,
	}
	h.writeJSON(w, response)
}

func (h *TurnHandler) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", "error", err)
	}
}
