// Package state holds the durable, session-scoped world state and the pure
// transition function that advances it one turn at a time.
package state

import (
	"time"

	"github.com/google/uuid"

	"fablestream/pkg/chat"
	"fablestream/pkg/scene"
)

// ConversationEntry is one line of the session's conversation log.
type ConversationEntry struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// WorldState is the durable record of one game session. It is a value type:
// transitions return a new state and never mutate their input, so a caller
// can thread states through turns (and hand snapshots to persistence)
// without sharing mutable fields.
type WorldState struct {
	ID                 uuid.UUID           `json:"id"`
	CurrentScene       *scene.SceneRecord  `json:"current_scene,omitempty"`
	PreviousLocationID string              `json:"previous_location_id,omitempty"`
	VisitedLocationIDs map[string]bool     `json:"visited_location_ids,omitempty"`
	ConversationLog    []ConversationEntry `json:"conversation_log,omitempty"`
}

// New creates an empty world state for a fresh session.
func New() WorldState {
	return WorldState{
		ID:                 uuid.New(),
		VisitedLocationIDs: make(map[string]bool),
	}
}

// FirstTurn reports whether the session has not yet completed a turn.
func (ws WorldState) FirstTurn() bool {
	return len(ws.ConversationLog) == 0
}

// RecentHistory returns up to limit trailing conversation entries as chat
// messages for the prompt window.
func (ws WorldState) RecentHistory(limit int) []chat.ChatMessage {
	entries := ws.ConversationLog
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	messages := make([]chat.ChatMessage, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, chat.ChatMessage{Role: e.Role, Content: e.Text})
	}
	return messages
}

// clone copies the state deeply enough that appending to the result cannot
// disturb the original.
func (ws WorldState) clone() WorldState {
	next := ws
	next.VisitedLocationIDs = make(map[string]bool, len(ws.VisitedLocationIDs)+1)
	for k, v := range ws.VisitedLocationIDs {
		next.VisitedLocationIDs[k] = v
	}
	next.ConversationLog = make([]ConversationEntry, len(ws.ConversationLog), len(ws.ConversationLog)+1)
	copy(next.ConversationLog, ws.ConversationLog)
	return next
}

// AppendUser returns a new state with the player's command appended to the
// conversation log.
func AppendUser(ws WorldState, text string, now time.Time) WorldState {
	next := ws.clone()
	next.ConversationLog = append(next.ConversationLog, ConversationEntry{
		Role:      chat.ChatRoleUser,
		Text:      text,
		Timestamp: now,
	})
	return next
}

// AppendNarration returns a new state with an assistant entry appended and
// no other change. This is the transition for a turn that produced
// narration but no decodable structured payload.
func AppendNarration(ws WorldState, text string, now time.Time) WorldState {
	next := ws.clone()
	next.ConversationLog = append(next.ConversationLog, ConversationEntry{
		Role:      chat.ChatRoleNarrator,
		Text:      text,
		Timestamp: now,
	})
	return next
}

// Apply advances the world state by one decoded response. On a scene, the
// current location is recorded as previous before being replaced, the new
// location joins the visited set, and the narration joins the log. On an
// action only the log changes.
func Apply(ws WorldState, r scene.GameResponse, now time.Time) WorldState {
	switch rec := r.(type) {
	case *scene.SceneRecord:
		next := ws.clone()
		if ws.CurrentScene != nil {
			next.PreviousLocationID = ws.CurrentScene.LocationID
		}
		sc := *rec
		next.CurrentScene = &sc
		next.VisitedLocationIDs[rec.LocationID] = true
		next.ConversationLog = append(next.ConversationLog, ConversationEntry{
			Role:      chat.ChatRoleNarrator,
			Text:      rec.NarrationText,
			Timestamp: now,
		})
		return next
	case *scene.ActionRecord:
		return AppendNarration(ws, rec.NarrationText, now)
	default:
		return ws
	}
}
