// Package worker orchestrates one game turn end to end: streaming the
// backend response through the chunk pipeline, decoding the payload,
// advancing world state, and triggering media regeneration.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fablestream/internal/config"
	"fablestream/internal/services"
	"fablestream/internal/services/events"
	"fablestream/pkg/prompts"
	"fablestream/pkg/respond"
	"fablestream/pkg/scene"
	"fablestream/pkg/state"
	"fablestream/pkg/stream"
	"fablestream/pkg/textfilter"
)

// TurnResult is the finalized outcome of one processed turn.
type TurnResult struct {
	Response  scene.GameResponse // nil when the turn produced no usable payload
	Issues    []string
	Narration string // full player-visible text emitted this turn

	RegeneratedArt   bool
	RegeneratedAudio bool
	ImageURL         string
	MusicURL         string

	State state.WorldState
}

// TurnProcessor runs turns for game sessions. Turns within one session are
// strictly sequential: the caller must not start a session's next turn
// until the previous ProcessTurn has returned.
type TurnProcessor struct {
	storage     services.Storage
	llm         services.LLMService
	media       services.MediaService // optional
	broadcaster *events.Broadcaster   // optional
	filter      *textfilter.Filter
	settings    config.GameSettings
	logger      *slog.Logger
}

// NewTurnProcessor creates a turn processor. media and broadcaster may be
// nil; the corresponding steps are skipped.
func NewTurnProcessor(
	storage services.Storage,
	llm services.LLMService,
	media services.MediaService,
	broadcaster *events.Broadcaster,
	settings config.GameSettings,
	logger *slog.Logger,
) *TurnProcessor {
	return &TurnProcessor{
		storage:     storage,
		llm:         llm,
		media:       media,
		broadcaster: broadcaster,
		filter:      textfilter.New(textfilter.RatingRequiresFilter(settings.Rating)),
		settings:    settings,
		logger:      logger,
	}
}

// ProcessTurn plays one turn: it streams the backend response, emits
// narration fragments to sink in strict arrival order, and returns the
// finalized result. If the stream fails mid-turn the session is discarded
// and the stored world state is left exactly as it was.
func (p *TurnProcessor) ProcessTurn(ctx context.Context, gameID uuid.UUID, message string, sink stream.Sink) (*TurnResult, error) {
	ws, err := p.storage.LoadWorldState(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}
	if ws == nil {
		return nil, fmt.Errorf("game not found: %s", gameID.String())
	}

	firstTurn := ws.FirstTurn()
	messages, err := prompts.New().
		WithWorldState(*ws).
		WithScenario(p.settings.Scenario).
		WithUserMessage(message).
		WithHistoryLimit(p.settings.HistoryLimit).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	chunks, err := p.llm.ChatStream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}

	var raw strings.Builder
	var emitted strings.Builder
	session := stream.NewSession()
	extractor := respond.NewFieldExtractor(respond.NarrationField)

	emit := func(text string) {
		if text == "" {
			return
		}
		filtered := p.filter.Apply(text)
		emitted.WriteString(filtered)
		if sink != nil {
			if err := sink.Emit(filtered); err != nil {
				p.logger.Warn("Narration sink rejected fragment", "error", err, "game_id", gameID.String())
			}
		}
		if p.broadcaster != nil {
			if err := p.broadcaster.PublishNarrationChunk(ctx, gameID, filtered); err != nil {
				p.logger.Warn("Failed to broadcast narration chunk", "error", err)
			}
		}
	}

	for chunk := range chunks {
		if chunk.Err != nil {
			// Discard the turn without touching world state.
			p.logger.Error("Stream failed mid-turn", "error", chunk.Err, "game_id", gameID.String())
			if p.broadcaster != nil {
				_ = p.broadcaster.PublishTurnFailed(ctx, gameID, chunk.Err.Error())
			}
			return nil, fmt.Errorf("stream failed: %w", chunk.Err)
		}
		if chunk.Done {
			break
		}
		raw.WriteString(chunk.Text)

		if firstTurn {
			// The opening turn is JSON-only; narration is surfaced live
			// from inside the payload as the field streams in.
			emit(extractor.Next(raw.String()))
			continue
		}
		cls, release := session.Classify(chunk.Text)
		if cls == stream.Narration && release != "" {
			emit(session.ProcessChunk(release))
		}
	}

	rawText := raw.String()
	now := time.Now().UTC()

	var payload string
	var havePayload bool
	switch {
	case firstTurn:
		payload = rawText
		havePayload = strings.TrimSpace(rawText) != ""
	case session.Classification() == stream.ToolInvocation:
		// Tool envelopes are not game responses. The turn stays silent
		// and the world state is never built from a tool payload.
		p.logger.Warn("Discarding tool invocation output",
			"game_id", gameID.String(), "bytes", len(session.ToolPayload()))
	default:
		if release := session.Resolve(); release != "" {
			emit(session.ProcessChunk(release))
		}
		emit(session.Flush())
		payload, havePayload = session.ExtractPayload()
	}

	var response scene.GameResponse
	var issues []string
	if havePayload {
		response, err = respond.Decode(respond.Repair(payload))
		if err != nil {
			p.logger.Warn("Payload decode failed, salvaging",
				"error", err, "game_id", gameID.String())
			// The salvaged text becomes the narration, unless prose
			// already went out this turn.
			if emitted.Len() == 0 {
				emit(respond.Salvage(payload))
			}
			response = nil
		} else {
			issues = scene.Validate(response)
		}
	}

	narration := emitted.String()
	if narration == "" && response != nil {
		narration = response.Narration()
	}
	// Subsequent-turn payloads carry no narrationText; thread the emitted
	// prose into the record so the conversation log reads complete.
	if response != nil && response.Narration() == "" {
		switch rec := response.(type) {
		case *scene.SceneRecord:
			rec.NarrationText = narration
		case *scene.ActionRecord:
			rec.NarrationText = narration
		}
	}

	// Regeneration decisions are evaluated against the pre-transition state.
	regenArt := state.ShouldRegenerateArt(*ws, response)
	regenAudio := state.ShouldRegenerateAudio(*ws, response, rawText)

	next := state.AppendUser(*ws, message, now)
	switch {
	case response != nil:
		next = state.Apply(next, response, now)
	case narration != "":
		next = state.AppendNarration(next, narration, now)
	}

	result := &TurnResult{
		Response:         response,
		Issues:           issues,
		Narration:        narration,
		RegeneratedArt:   regenArt,
		RegeneratedAudio: regenAudio,
		State:            next,
	}

	if sc, ok := response.(*scene.SceneRecord); ok && p.media != nil {
		p.generateMedia(ctx, gameID, sc, result)
	}

	if err := p.storage.SaveWorldState(ctx, gameID, next); err != nil {
		return nil, fmt.Errorf("failed to save world state: %w", err)
	}

	if p.broadcaster != nil {
		if err := p.broadcaster.PublishTurnCompleted(ctx, gameID, narration, issues); err != nil {
			p.logger.Warn("Failed to broadcast turn completion", "error", err)
		}
		location := ""
		if next.CurrentScene != nil {
			location = next.CurrentScene.LocationID
		}
		if err := p.broadcaster.PublishStateUpdated(ctx, gameID, location, len(next.ConversationLog)); err != nil {
			p.logger.Warn("Failed to broadcast state update", "error", err)
		}
	}

	if len(issues) > 0 {
		p.logger.Info("Turn completed with validation issues",
			"game_id", gameID.String(), "issues", issues)
	}
	return result, nil
}

// generateMedia runs the media regeneration decisions against the media
// service. Media failures are logged, never fatal to the turn.
func (p *TurnProcessor) generateMedia(ctx context.Context, gameID uuid.UUID, sc *scene.SceneRecord, result *TurnResult) {
	if result.RegeneratedArt {
		url, err := p.media.GenerateImage(ctx, sc.ImageDescription)
		if err != nil {
			p.logger.Error("Scene art generation failed", "error", err, "location_id", sc.LocationID)
		} else {
			result.ImageURL = url
			if p.broadcaster != nil {
				_ = p.broadcaster.PublishImageUpdated(ctx, gameID, sc.LocationID, url)
			}
		}
	}
	if result.RegeneratedAudio {
		url, err := p.media.GenerateMusic(ctx, sc.MusicDescription, sc.MusicMood)
		if err != nil {
			p.logger.Error("Ambient music generation failed", "error", err, "location_id", sc.LocationID)
		} else {
			result.MusicURL = url
			if p.broadcaster != nil {
				_ = p.broadcaster.PublishMusicUpdated(ctx, gameID, sc.LocationID, url)
			}
		}
	}
}
