package state

import (
	"strings"

	"fablestream/pkg/scene"
)

// audioCueWords is a best-effort heuristic for turns whose structured data
// was malformed or missing: narration containing any of these substrings
// signals an entrance, battle, victory or defeat, each of which warrants a
// music change. The list is a frozen contract; its coverage is deliberately
// not tuned here.
var audioCueWords = []string{
	"you enter",
	"entering",
	"battle",
	"victory",
	"defeat",
	"you die",
}

// ShouldRegenerateArt decides whether the scene art must be redrawn for
// this response, evaluated against the pre-transition state. Regeneration
// is driven by location identity, not content: the first scene of a session
// always regenerates, and afterwards only a change of locationId does.
func ShouldRegenerateArt(ws WorldState, r scene.GameResponse) bool {
	sc, ok := r.(*scene.SceneRecord)
	if !ok {
		return false
	}
	if ws.CurrentScene == nil {
		return true
	}
	return sc.LocationID != ws.CurrentScene.LocationID
}

// ShouldRegenerateAudio decides whether ambient music must be regenerated.
// Any full scene carries fresh music hints; otherwise the keyword heuristic
// over the raw narration text is the fallback for responses that lacked
// structured data.
func ShouldRegenerateAudio(ws WorldState, r scene.GameResponse, rawText string) bool {
	if _, ok := r.(*scene.SceneRecord); ok {
		return true
	}
	lower := strings.ToLower(rawText)
	for _, cue := range audioCueWords {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
