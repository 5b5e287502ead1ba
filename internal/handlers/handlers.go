// Package handlers exposes the engine over HTTP: session management, turn
// processing, live events, and health.
package handlers

// ErrorResponse is the JSON body returned for any handler-level failure.
// Internal detail never reaches the player; the message is always safe to
// display.
type ErrorResponse struct {
	Error string `json:"error"`
}
