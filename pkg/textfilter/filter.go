// Package textfilter scrubs player-visible narration for content ratings
// that require family-friendly language. Fragments are filtered one at a
// time, in arrival order, and never reordered or merged.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps words unsuitable for PG-13 and lower ratings to tamer
// alternatives.
var replacements = map[string]string{
	"fuck":     "fudge",
	"shit":     "shoot",
	"damn":     "dang",
	"hell":     "heck",
	"ass":      "butt",
	"bitch":    "jerk",
	"bastard":  "scoundrel",
	"crap":     "crud",
	"asshole":  "jerk",
	"goddamn":  "gosh-dang",
	"bullshit": "nonsense",
	"piss":     "tick",
	"prick":    "jerk",
	"whore":    "[censored]",
	"slut":     "[censored]",
}

// Filter replaces unsuitable words in narration fragments while preserving
// the original word's casing.
type Filter struct {
	patterns map[string]*regexp.Regexp
	enabled  bool
}

// New builds a filter. When enabled is false, Apply passes text through
// untouched.
func New(enabled bool) *Filter {
	f := &Filter{
		patterns: make(map[string]*regexp.Regexp, len(replacements)),
		enabled:  enabled,
	}
	for word := range replacements {
		f.patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// RatingRequiresFilter reports whether a content rating calls for scrubbed
// narration.
func RatingRequiresFilter(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}

// Apply filters one narration fragment.
func (f *Filter) Apply(text string) string {
	if !f.enabled {
		return text
	}
	result := text
	for word, pattern := range f.patterns {
		replacement := replacements[word]
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			return matchCase(match, replacement)
		})
	}
	return result
}

// matchCase shapes replacement to the casing of the matched word.
func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) {
		return strings.ToUpper(replacement)
	}
	if original == strings.ToLower(original) {
		return replacement
	}
	titler := cases.Title(language.English)
	if original == titler.String(strings.ToLower(original)) {
		return titler.String(replacement)
	}
	out := []rune(replacement)
	src := []rune(original)
	for i := range out {
		if i < len(src) && unicode.IsUpper(src[i]) {
			out[i] = unicode.ToUpper(out[i])
		}
	}
	return string(out)
}
