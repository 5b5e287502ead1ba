package stream

import "strings"

// Marker separates narration prose from the trailing JSON payload. The
// leading newline belongs to the marker so that the line break before the
// delimiter is never emitted as narration.
const Marker = "\n<<<JSON>>>"

// ProcessChunk appends a chunk to the splitter and returns any narration
// that is now safe to emit. Until the marker has been seen, the last
// len(Marker)-1 bytes of unemitted text are withheld: that tail is the most
// that could still turn out to be a partial marker, so no marker fragment
// can ever leak to the player regardless of chunk boundaries.
func (s *Session) ProcessChunk(chunk string) string {
	s.acc += chunk
	if s.markerFound {
		// Everything after the marker is payload, never narration.
		return ""
	}

	if idx := strings.Index(s.acc, Marker); idx >= 0 {
		s.markerFound = true
		s.payloadIdx = idx + len(Marker)
		out := s.acc[s.emitted:idx]
		s.emitted = idx
		return out
	}

	safe := len(s.acc) - (len(Marker) - 1)
	if safe <= s.emitted {
		return ""
	}
	out := s.acc[s.emitted:safe]
	s.emitted = safe
	return out
}

// Flush releases the withheld tail after the stream has ended without a
// marker. With no more chunks coming, the tail can no longer be a partial
// marker and the accumulated text is plain narration in full.
func (s *Session) Flush() string {
	if s.markerFound || s.emitted >= len(s.acc) {
		return ""
	}
	out := s.acc[s.emitted:]
	s.emitted = len(s.acc)
	return out
}

// ExtractPayload returns the raw payload following the marker. It reports
// false when no marker was ever found, in which case there is no structured
// payload and decoding is skipped.
func (s *Session) ExtractPayload() (string, bool) {
	if !s.markerFound {
		return "", false
	}
	payload := s.acc[s.payloadIdx:]
	// The grammar puts one newline between the marker and the JSON object.
	payload = strings.TrimPrefix(payload, "\n")
	return payload, true
}
