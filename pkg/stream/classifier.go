package stream

import "strings"

// classifyWindow is how many chunks may stay Unknown before the session
// fails open to Narration. Silence is worse for the player than showing a
// slow-starting response.
const classifyWindow = 3

// Classify labels an incoming chunk and returns the text that should flow
// on to the splitter. While the session is Unknown, chunks are buffered and
// nothing is released. On the transition to Narration the buffered chunks
// are released together with the current one. Once ToolInvocation is
// reached nothing is ever released again this turn; the buffered text
// remains available via ToolPayload.
func (s *Session) Classify(chunk string) (Classification, string) {
	switch s.class {
	case Narration:
		return Narration, chunk
	case ToolInvocation:
		s.pending += chunk
		return ToolInvocation, ""
	}

	s.pending += chunk
	s.chunksSeen++

	if looksLikeToolInvocation(s.pending) {
		s.class = ToolInvocation
		return ToolInvocation, ""
	}
	if looksLikeFreeText(s.pending) || s.chunksSeen >= classifyWindow {
		s.class = Narration
		release := s.pending
		s.pending = ""
		return Narration, release
	}
	return Unknown, ""
}

// Resolve settles a session that is still Unknown when the stream ends.
// With no more chunks coming the fail-open rule applies: the session becomes
// Narration and the buffered text is returned for the splitter. Sessions
// already classified are unchanged and return nothing.
func (s *Session) Resolve() string {
	if s.class != Unknown {
		return ""
	}
	s.class = Narration
	release := s.pending
	s.pending = ""
	return release
}

// ToolPayload returns the accumulated tool-invocation content. Empty unless
// the session classified as ToolInvocation.
func (s *Session) ToolPayload() string {
	if s.class != ToolInvocation {
		return ""
	}
	return s.pending
}

// looksLikeToolInvocation reports whether the accumulated prefix is the
// start of a function/tool call rather than prose. Backends surface these
// as JSON objects carrying a tool-use type or a name/arguments pair.
func looksLikeToolInvocation(text string) bool {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "{") {
		return false
	}
	if strings.Contains(t, `"tool_use"`) || strings.Contains(t, `"tool_call"`) || strings.Contains(t, `"function_call"`) {
		return true
	}
	return strings.Contains(t, `"name"`) && (strings.Contains(t, `"arguments"`) || strings.Contains(t, `"input"`))
}

// looksLikeFreeText reports whether the accumulated prefix is clearly prose:
// non-empty and not opening a JSON structure.
func looksLikeFreeText(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	return t[0] != '{' && t[0] != '['
}
