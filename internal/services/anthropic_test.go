package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablestream/pkg/chat"
)

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewAnthropicService("test-key", "test-model", slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.baseURL = server.URL
	return svc
}

func TestAnthropicChatStream(t *testing.T) {
	events := []string{
		`{"type":"message_start"}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"You stand "}}`,
		`{"type":"content_block_delta","delta":{"type":"text_delta","text":"at a cavern mouth."}}`,
		`{"type":"message_stop"}`,
	}
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.NotEmpty(t, req.System, "system messages should fold into the system prompt")
		for _, msg := range req.Messages {
			assert.NotEqual(t, chat.ChatRoleSystem, msg.Role)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, e := range events {
			fmt.Fprintf(w, "data: %s\n\n", e)
		}
	})

	chunks, err := svc.ChatStream(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "You are the narrator."},
		{Role: chat.ChatRoleUser, Content: "look"},
	})
	require.NoError(t, err)

	var text strings.Builder
	var done bool
	for chunk := range chunks {
		require.NoError(t, chunk.Err)
		if chunk.Done {
			done = true
			break
		}
		text.WriteString(chunk.Text)
	}
	assert.True(t, done)
	assert.Equal(t, "You stand at a cavern mouth.", text.String())
}

func TestAnthropicChatStreamSurfacesErrors(t *testing.T) {
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"You begin\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"error\",\"error\":{\"type\":\"overloaded_error\",\"message\":\"Overloaded\"}}\n\n")
	})

	chunks, err := svc.ChatStream(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "look"},
	})
	require.NoError(t, err)

	var streamErr error
	for chunk := range chunks {
		if chunk.Err != nil {
			streamErr = chunk.Err
		}
	}
	require.Error(t, streamErr)
	assert.Contains(t, streamErr.Error(), "Overloaded")
}

func TestAnthropicChatStreamRejectsBadStatus(t *testing.T) {
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	})

	_, err := svc.ChatStream(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "look"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAnthropicChat(t *testing.T) {
	svc := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		resp := anthropicChatResponse{
			Content: []anthropicContentBlock{
				{Type: "text", Text: "The cavern waits."},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	resp, err := svc.Chat(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "look"},
	})
	require.NoError(t, err)
	assert.Equal(t, "The cavern waits.", resp.Message)
}
