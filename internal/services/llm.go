package services

import (
	"context"

	"fablestream/pkg/chat"
)

// StreamChunk is one ordered fragment of a streaming backend response.
// Concatenating Text in arrival order reconstructs the full response. Err
// is set when the stream fails mid-turn; no further chunks follow it.
type StreamChunk struct {
	Text string
	Err  error
	Done bool
}

// LLMService is the interface to the generative text backend.
type LLMService interface {
	// InitModel prepares the backend model on startup.
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a complete (non-streaming) response.
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// ChatStream generates a response as an ordered chunk feed. The
	// channel is closed after a Done or Err chunk.
	ChatStream(ctx context.Context, messages []chat.ChatMessage) (<-chan StreamChunk, error)
}
