package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fablestream/pkg/chat"
	"fablestream/pkg/state"
)

// apiClient talks to the fablestream API server.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
		},
	}
}

// newGame creates a session and returns its world state.
func (c *apiClient) newGame(ctx context.Context) (*state.WorldState, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/games", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create game failed with status %d: %s", resp.StatusCode, string(body))
	}

	var ws state.WorldState
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	return &ws, nil
}

// playTurn submits one command and returns the finalized turn result.
// Narration streams separately over the events channel.
func (c *apiClient) playTurn(ctx context.Context, gameID uuid.UUID, message string) (*chat.TurnResponse, error) {
	body, err := json.Marshal(chat.TurnRequest{GameID: gameID, Message: message})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/games/%s/turn", c.baseURL, gameID.String())
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to play turn: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("turn failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var turnResp chat.TurnResponse
	if err := json.NewDecoder(resp.Body).Decode(&turnResp); err != nil {
		return nil, fmt.Errorf("failed to decode turn response: %w", err)
	}
	return &turnResp, nil
}

// sseEvent is one event received from the live events stream.
type sseEvent struct {
	Type string
	Data map[string]any
}

// streamEvents subscribes to the game's SSE channel and forwards events
// until the context is cancelled or the connection drops.
func (c *apiClient) streamEvents(ctx context.Context, gameID uuid.UUID) (<-chan sseEvent, error) {
	url := fmt.Sprintf("%s/v1/events/games/%s", c.baseURL, gameID.String())
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout on a long-lived stream; cancellation comes from ctx.
	streamClient := &http.Client{}
	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, fmt.Errorf("event subscription failed with status %d: %s", resp.StatusCode, string(body))
	}

	out := make(chan sseEvent, 16)
	go func() {
		defer close(out)
		defer func() { _ = resp.Body.Close() }()

		var eventType string
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				eventType = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				var data map[string]any
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &data); err != nil {
					continue
				}
				select {
				case out <- sseEvent{Type: eventType, Data: data}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
