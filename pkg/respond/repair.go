package respond

import "strings"

// Repair closes a JSON fragment that was truncated mid-structure. Bracket
// balance is counted outside string literals, respecting escapes; missing
// closers are appended in LIFO order of what is still open. If the
// truncation landed inside a string literal, the string is closed first.
// An already balanced fragment is returned unchanged.
func Repair(fragment string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !inString && len(stack) == 0 {
		return fragment
	}

	var sb strings.Builder
	sb.WriteString(fragment)
	if inString {
		if escaped {
			// Trailing lone backslash would escape our closing quote.
			sb.WriteByte('\\')
		}
		sb.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			sb.WriteByte('}')
		} else {
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
