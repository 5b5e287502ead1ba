package respond

import "strings"

// NarrationField is the JSON field carrying player-visible text.
const NarrationField = "narrationText"

// ApologyNarration is shown when a payload is unsalvageable JSON. Raw JSON
// is never displayed to the player.
const ApologyNarration = "The storyteller pauses, momentarily lost for words. Please try that again."

// Salvage is the last-resort recovery for a payload that failed to decode.
// It is deliberately looser than Decode and must only run after Decode has
// returned a ParseError. Tiers, in order:
//
//  1. the payload carries a narrationText-shaped field: use its extracted
//     value verbatim, with no structured scene;
//  2. the payload looks like JSON: substitute a generic apology;
//  3. otherwise the text was never structured: use it as narration as-is.
func Salvage(raw string) string {
	if text, ok := ExtractField(raw, NarrationField); ok && strings.TrimSpace(text) != "" {
		return text
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return ApologyNarration
	}
	return raw
}
