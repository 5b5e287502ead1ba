// Package respond decodes the structured payload that trails each backend
// narration, tolerating the truncated and malformed JSON an unreliable
// generative backend produces.
package respond

import "fmt"

// ParseError reports a payload that could not be decoded into a game
// response, even after repair.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
