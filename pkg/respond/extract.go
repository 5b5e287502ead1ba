package respond

import "strings"

// FieldExtractor incrementally pulls one string field's value out of an
// accumulating, possibly incomplete JSON payload. It decodes as much of the
// value as has arrived, so a field can be shown to the player while the
// backend is still streaming it. Each call reports only the suffix that has
// become available since the previous call.
type FieldExtractor struct {
	field    string
	reported int
}

// NewFieldExtractor creates an extractor for the named string field.
func NewFieldExtractor(field string) *FieldExtractor {
	return &FieldExtractor{field: field}
}

// Next scans payload (the full accumulated text so far) and returns the
// newly available portion of the field's decoded value. It returns "" until
// the field's opening quote has arrived, and "" again once the value is
// exhausted.
func (x *FieldExtractor) Next(payload string) string {
	value, _ := scanFieldValue(payload, x.field)
	if len(value) <= x.reported {
		return ""
	}
	delta := value[x.reported:]
	x.reported = len(value)
	return delta
}

// Value returns everything reported so far plus anything newly available.
func (x *FieldExtractor) Value(payload string) string {
	value, _ := scanFieldValue(payload, x.field)
	if len(value) > x.reported {
		x.reported = len(value)
	}
	return value
}

// ExtractField is the one-shot form: it returns the decoded value of the
// named string field and whether the field was present at all.
func ExtractField(payload, field string) (string, bool) {
	return scanFieldValue(payload, field)
}

// scanFieldValue locates `"field":"` and decodes the string value that
// follows, honoring JSON escapes, until an unescaped closing quote or the
// end of the buffer. A missing closing quote is not an error; whatever has
// been decoded so far is returned.
func scanFieldValue(payload, field string) (string, bool) {
	key := `"` + field + `"`
	idx := strings.Index(payload, key)
	if idx < 0 {
		return "", false
	}

	// Skip to the opening quote of the value: colon, optional whitespace.
	i := idx + len(key)
	for i < len(payload) && (payload[i] == ':' || payload[i] == ' ' || payload[i] == '\t' || payload[i] == '\n' || payload[i] == '\r') {
		i++
	}
	if i >= len(payload) || payload[i] != '"' {
		return "", false
	}
	i++

	var sb strings.Builder
	for i < len(payload) {
		c := payload[i]
		if c == '"' {
			break
		}
		if c == '\\' {
			if i+1 >= len(payload) {
				// A lone trailing backslash is half an escape sequence;
				// wait for the next chunk.
				break
			}
			i++
			switch payload[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				// `\"`, `\\`, `\/` and anything unrecognized: keep the
				// escaped character itself.
				sb.WriteByte(payload[i])
			}
			i++
			continue
		}
		sb.WriteByte(c)
		i++
	}

	return sb.String(), true
}
