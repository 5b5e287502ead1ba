// Package prompts assembles the chat messages sent to the narrative
// backend, including the response-grammar contract the stream pipeline
// depends on.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"fablestream/pkg/chat"
	"fablestream/pkg/state"
)

// DefaultHistoryLimit caps how many conversation entries ride along in the
// prompt window.
const DefaultHistoryLimit = 10

// Builder constructs the message array for one turn using a fluent
// interface, separating prompt assembly from turn orchestration.
type Builder struct {
	ws           *state.WorldState
	scenarioName string
	userMessage  string
	historyLimit int
}

// New creates a prompt builder with default settings.
func New() *Builder {
	return &Builder{historyLimit: DefaultHistoryLimit}
}

// WithWorldState sets the session state the prompt describes.
func (b *Builder) WithWorldState(ws state.WorldState) *Builder {
	b.ws = &ws
	return b
}

// WithScenario names the scenario premise to open the session with.
func (b *Builder) WithScenario(name string) *Builder {
	b.scenarioName = name
	return b
}

// WithUserMessage sets the player's command for this turn.
func (b *Builder) WithUserMessage(message string) *Builder {
	b.userMessage = message
	return b
}

// WithHistoryLimit overrides the conversation window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build returns the final message array. The first turn of a session gets
// the JSON-only grammar; every later turn gets the marker grammar.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.ws == nil {
		return nil, fmt.Errorf("world state is required")
	}
	if b.userMessage == "" {
		return nil, fmt.Errorf("user message is required")
	}

	var sys strings.Builder
	if b.ws.FirstTurn() {
		sys.WriteString(firstTurnPreamble)
	} else {
		sys.WriteString(systemPreamble)
	}
	sys.WriteString("\n\n")
	sys.WriteString(payloadShape)

	if b.scenarioName != "" {
		fmt.Fprintf(&sys, "\n\nScenario: %s", b.scenarioName)
	}
	if b.ws.CurrentScene != nil {
		fmt.Fprintf(&sys, "\n\nThe player is currently at %q (%s).",
			b.ws.CurrentScene.LocationName, b.ws.CurrentScene.LocationID)
		if len(b.ws.VisitedLocationIDs) > 0 {
			fmt.Fprintf(&sys, " Locations already visited: %s.", strings.Join(visitedList(*b.ws), ", "))
		}
	}

	messages := make([]chat.ChatMessage, 0, b.historyLimit+2)
	messages = append(messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: sys.String(),
	})
	messages = append(messages, b.ws.RecentHistory(b.historyLimit)...)
	messages = append(messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: b.userMessage,
	})
	return messages, nil
}

func visitedList(ws state.WorldState) []string {
	ids := make([]string, 0, len(ws.VisitedLocationIDs))
	for id := range ws.VisitedLocationIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
