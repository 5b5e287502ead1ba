package respond

import (
	"encoding/json"
	"strings"

	"fablestream/pkg/scene"
)

// Response type discriminator values. An absent responseType means a full
// scene; "simple" means an action-only result.
const (
	ResponseTypeScene  = "fullScene"
	ResponseTypeSimple = "simple"
)

// Decode parses a finalized payload into a SceneRecord or ActionRecord.
//
// Two grammars reach this function. On the session's first turn the backend
// emits a single JSON object with narrationText inline; on every later turn
// the payload follows the narration marker and carries no narrationText.
// The caller selects which grammar applies from turn context; the payload
// content is never sniffed, so Decode itself is identical for both.
func Decode(payload string) (scene.GameResponse, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil, &ParseError{Reason: "empty payload"}
	}

	var discriminator struct {
		ResponseType string `json:"responseType"`
	}
	if err := json.Unmarshal([]byte(trimmed), &discriminator); err != nil {
		return nil, &ParseError{Reason: "payload is not valid JSON", Err: err}
	}

	if discriminator.ResponseType == ResponseTypeSimple {
		var action scene.ActionRecord
		if err := json.Unmarshal([]byte(trimmed), &action); err != nil {
			return nil, &ParseError{Reason: "malformed action response", Err: err}
		}
		return &action, nil
	}

	// Anything else, including an absent responseType, is a full scene.
	var sc scene.SceneRecord
	if err := json.Unmarshal([]byte(trimmed), &sc); err != nil {
		// Includes structural faults such as an exit expressed as a bare
		// string instead of an object; those must not be coerced.
		return nil, &ParseError{Reason: "malformed scene response", Err: err}
	}
	return &sc, nil
}
