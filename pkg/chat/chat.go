package chat

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	ChatRoleUser     = "user"
	ChatRoleNarrator = "assistant" // the backend narrator
	ChatRoleSystem   = "system"
)

// ChatMessage is a single message in the conversation sent to the LLM.
// The shape follows the message format shared by the Anthropic and
// OpenAI-style chat APIs.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is a complete backend response, used on the non-streaming
// path.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}

// TurnRequest is one player command submitted to the engine.
type TurnRequest struct {
	GameID  uuid.UUID `json:"game_id"`
	Message string    `json:"message"`
}

// TurnResponse is the finalized result of a turn, returned by the API
// after narration has already been streamed out.
type TurnResponse struct {
	GameID           uuid.UUID `json:"game_id,omitempty"`
	Narration        string    `json:"narration,omitempty"`
	ValidationIssues []string  `json:"validation_issues,omitempty"`
	RegeneratedArt   bool      `json:"regenerated_art"`
	RegeneratedAudio bool      `json:"regenerated_audio"`
	ImageURL         string    `json:"image_url,omitempty"`
	MusicURL         string    `json:"music_url,omitempty"`
	Error            string    `json:"error,omitempty"`
}

func (tr *TurnRequest) Validate() error {
	if tr.GameID == uuid.Nil {
		return fmt.Errorf("game_id is required")
	}
	if tr.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}
