package services

import (
	"context"
	"sync"

	"fablestream/pkg/chat"
)

// MockLLMService is a mock implementation of LLMService for testing.
type MockLLMService struct {
	InitModelFunc  func(ctx context.Context, modelName string) error
	ChatFunc       func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
	ChatStreamFunc func(ctx context.Context, messages []chat.ChatMessage) (<-chan StreamChunk, error)

	// StreamChunks, when set and ChatStreamFunc is nil, is replayed in
	// order by ChatStream with a Done chunk appended.
	StreamChunks []string

	InitModelCalls  []string
	ChatCalls       [][]chat.ChatMessage
	ChatStreamCalls [][]chat.ChatMessage

	mu sync.Mutex // protects all fields above
}

func NewMockLLMService() *MockLLMService {
	return &MockLLMService{}
}

func (m *MockLLMService) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = append(m.InitModelCalls, modelName)
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

func (m *MockLLMService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, messages)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return &chat.ChatResponse{Message: "Mock response"}, nil
}

func (m *MockLLMService) ChatStream(ctx context.Context, messages []chat.ChatMessage) (<-chan StreamChunk, error) {
	m.mu.Lock()
	m.ChatStreamCalls = append(m.ChatStreamCalls, messages)
	fn := m.ChatStreamFunc
	chunks := make([]string, len(m.StreamChunks))
	copy(chunks, m.StreamChunks)
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}

	out := make(chan StreamChunk, len(chunks)+1)
	for _, text := range chunks {
		out <- StreamChunk{Text: text}
	}
	out <- StreamChunk{Done: true}
	close(out)
	return out, nil
}

// Reset clears all call tracking.
func (m *MockLLMService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = nil
	m.ChatCalls = nil
	m.ChatStreamCalls = nil
}
