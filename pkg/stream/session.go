package stream

// Classification is the session-level label for the incoming stream.
// Transitions only move forward out of Unknown, never back.
type Classification int

const (
	Unknown Classification = iota
	Narration
	ToolInvocation
)

func (c Classification) String() string {
	switch c {
	case Narration:
		return "narration"
	case ToolInvocation:
		return "tool_invocation"
	default:
		return "unknown"
	}
}

// Session is the per-turn accumulator for the chunk pipeline. It is created
// at the start of a turn and discarded at the end; it is not safe for
// concurrent use and must never be shared across turns.
type Session struct {
	class      Classification
	pending    string // chunks buffered while classification is Unknown
	chunksSeen int

	acc         string // text accumulated by the splitter
	emitted     int    // narration bytes already released to the caller
	markerFound bool
	payloadIdx  int
}

// NewSession creates the accumulator for one turn.
func NewSession() *Session {
	return &Session{}
}

// Classification returns the session's current label.
func (s *Session) Classification() Classification {
	return s.class
}

// Accumulated returns the full splitter text received so far.
func (s *Session) Accumulated() string {
	return s.acc
}
