package prompts

import (
	"strings"
	"testing"
	"time"

	"fablestream/pkg/chat"
	"fablestream/pkg/scene"
	"fablestream/pkg/state"
)

func TestBuild_FirstTurnUsesJSONOnlyGrammar(t *testing.T) {
	ws := state.New()
	messages, err := New().
		WithWorldState(ws).
		WithScenario("The Sunken Keep").
		WithUserMessage("begin").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want system + user", len(messages))
	}

	sys := messages[0]
	if sys.Role != chat.ChatRoleSystem {
		t.Errorf("first message role = %q, want system", sys.Role)
	}
	if !strings.Contains(sys.Content, "single JSON object and nothing else") {
		t.Error("first-turn system prompt should demand JSON-only output")
	}
	if strings.Contains(sys.Content, "<<<JSON>>>") {
		t.Error("first-turn system prompt should not mention the marker")
	}
	if !strings.Contains(sys.Content, "Scenario: The Sunken Keep") {
		t.Error("system prompt should carry the scenario name")
	}
	if messages[1].Role != chat.ChatRoleUser || messages[1].Content != "begin" {
		t.Errorf("last message = %+v, want the player's command", messages[1])
	}
}

func TestBuild_LaterTurnsUseMarkerGrammar(t *testing.T) {
	now := time.Now()
	ws := state.Apply(state.New(), &scene.SceneRecord{
		LocationID:    "cavern_entrance",
		LocationName:  "Cavern Entrance",
		NarrationText: "You stand at a cavern mouth.",
	}, now)
	ws = state.Apply(ws, &scene.SceneRecord{
		LocationID:    "great_hall",
		LocationName:  "Great Hall",
		NarrationText: "Pillars rise into darkness.",
	}, now)

	messages, err := New().
		WithWorldState(ws).
		WithUserMessage("go north").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	sys := messages[0].Content
	if !strings.Contains(sys, "<<<JSON>>>") {
		t.Error("system prompt should describe the marker grammar")
	}
	if !strings.Contains(sys, `"Great Hall" (great_hall)`) {
		t.Errorf("system prompt should name the current location, got:\n%s", sys)
	}
	// Visited list is sorted for a stable prompt.
	if !strings.Contains(sys, "cavern_entrance, great_hall") {
		t.Errorf("system prompt should list visited locations in order, got:\n%s", sys)
	}
}

func TestBuild_HistoryWindow(t *testing.T) {
	ws := state.New()
	now := time.Now()
	for _, text := range []string{"one", "two", "three", "four", "five"} {
		ws = state.AppendUser(ws, text, now)
	}

	messages, err := New().
		WithWorldState(ws).
		WithUserMessage("six").
		WithHistoryLimit(3).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// system + 3 history + user
	if len(messages) != 5 {
		t.Fatalf("len(messages) = %d, want 5", len(messages))
	}
	if messages[1].Content != "three" {
		t.Errorf("history window starts at %q, want three", messages[1].Content)
	}
}

func TestBuild_RequiredFields(t *testing.T) {
	if _, err := New().WithUserMessage("hi").Build(); err == nil {
		t.Error("Build() without a world state should fail")
	}
	if _, err := New().WithWorldState(state.New()).Build(); err == nil {
		t.Error("Build() without a user message should fail")
	}
}
