// Package events publishes per-game events to Redis Pub/Sub for SSE
// distribution to live clients.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventType identifies an event on a game channel.
type EventType string

const (
	EventTypeNarrationChunk EventType = "narration.chunk"
	EventTypeTurnCompleted  EventType = "turn.completed"
	EventTypeTurnFailed     EventType = "turn.failed"
	EventTypeImageUpdated   EventType = "media.image_updated"
	EventTypeMusicUpdated   EventType = "media.music_updated"
	EventTypeStateUpdated   EventType = "game.state_updated"
)

// Event is the generic structure published to a game channel.
type Event struct {
	Type   EventType      `json:"type"`
	GameID string         `json:"game_id,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Broadcaster publishes game events over Redis Pub/Sub.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster.
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// ChannelFor returns the pub/sub channel name for a game.
func ChannelFor(gameID uuid.UUID) string {
	return fmt.Sprintf("game-events:%s", gameID.String())
}

// PublishNarrationChunk publishes one narration fragment. Fragments must be
// published in emission order; clients concatenate them as they arrive.
func (b *Broadcaster) PublishNarrationChunk(ctx context.Context, gameID uuid.UUID, fragment string) error {
	return b.publish(ctx, gameID, Event{
		Type:   EventTypeNarrationChunk,
		GameID: gameID.String(),
		Data: map[string]any{
			"content": fragment,
		},
	})
}

// PublishTurnCompleted publishes the finalized turn result.
func (b *Broadcaster) PublishTurnCompleted(ctx context.Context, gameID uuid.UUID, narration string, issues []string) error {
	return b.publish(ctx, gameID, Event{
		Type:   EventTypeTurnCompleted,
		GameID: gameID.String(),
		Data: map[string]any{
			"narration":         narration,
			"validation_issues": issues,
		},
	})
}

// PublishTurnFailed publishes a turn-level failure.
func (b *Broadcaster) PublishTurnFailed(ctx context.Context, gameID uuid.UUID, errorMsg string) error {
	return b.publish(ctx, gameID, Event{
		Type:   EventTypeTurnFailed,
		GameID: gameID.String(),
		Data: map[string]any{
			"error": errorMsg,
		},
	})
}

// PublishImageUpdated announces regenerated scene art.
func (b *Broadcaster) PublishImageUpdated(ctx context.Context, gameID uuid.UUID, locationID, url string) error {
	return b.publish(ctx, gameID, Event{
		Type:   EventTypeImageUpdated,
		GameID: gameID.String(),
		Data: map[string]any{
			"location_id": locationID,
			"url":         url,
		},
	})
}

// PublishMusicUpdated announces regenerated ambient music.
func (b *Broadcaster) PublishMusicUpdated(ctx context.Context, gameID uuid.UUID, locationID, url string) error {
	return b.publish(ctx, gameID, Event{
		Type:   EventTypeMusicUpdated,
		GameID: gameID.String(),
		Data: map[string]any{
			"location_id": locationID,
			"url":         url,
		},
	})
}

// PublishStateUpdated announces a world-state transition.
func (b *Broadcaster) PublishStateUpdated(ctx context.Context, gameID uuid.UUID, locationID string, turn int) error {
	return b.publish(ctx, gameID, Event{
		Type:   EventTypeStateUpdated,
		GameID: gameID.String(),
		Data: map[string]any{
			"location_id": locationID,
			"turn":        turn,
		},
	})
}

func (b *Broadcaster) publish(ctx context.Context, gameID uuid.UUID, event Event) error {
	channel := ChannelFor(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published", "channel", channel, "event_type", event.Type)
	return nil
}
