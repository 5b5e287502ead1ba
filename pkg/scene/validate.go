package scene

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Character limits for backend-provided text fields. Narration beyond these
// lengths tends to outrun the TTS budget for a single turn.
const (
	MaxSceneNarration   = 600
	MaxActionNarration  = 400
	MaxImageDescription = 600
	MaxMusicDescription = 400
)

var locationIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Validate checks a decoded response against the domain invariants and
// returns one human-readable issue per violation. Validation is advisory:
// a non-empty result never prevents the response from being applied.
func Validate(r GameResponse) []string {
	switch rec := r.(type) {
	case *SceneRecord:
		return validateScene(rec)
	case *ActionRecord:
		return validateAction(rec)
	default:
		return nil
	}
}

func validateScene(s *SceneRecord) []string {
	var issues []string

	if !locationIDPattern.MatchString(s.LocationID) {
		issues = append(issues, fmt.Sprintf("locationId %q does not match ^[a-z0-9_-]+$", s.LocationID))
	}
	if s.LocationName == "" {
		issues = append(issues, "locationName is empty")
	}
	if n := utf8.RuneCountInString(s.NarrationText); n > MaxSceneNarration {
		issues = append(issues, fmt.Sprintf("narrationText is %d characters, max %d", n, MaxSceneNarration))
	}
	if n := utf8.RuneCountInString(s.ImageDescription); n > MaxImageDescription {
		issues = append(issues, fmt.Sprintf("imageDescription is %d characters, max %d", n, MaxImageDescription))
	}
	if n := utf8.RuneCountInString(s.MusicDescription); n > MaxMusicDescription {
		issues = append(issues, fmt.Sprintf("musicDescription is %d characters, max %d", n, MaxMusicDescription))
	}
	if !s.MusicMood.IsValid() {
		issues = append(issues, fmt.Sprintf("invalid musicMood %q", s.MusicMood))
	}
	if len(s.Exits) == 0 {
		issues = append(issues, "scene has no exits")
	}
	for i, exit := range s.Exits {
		if !exit.Direction.IsValid() {
			issues = append(issues, fmt.Sprintf("exit %d has invalid direction %q", i, exit.Direction))
		}
		if !locationIDPattern.MatchString(exit.TargetLocationID) {
			issues = append(issues, fmt.Sprintf("exit %d target %q does not match ^[a-z0-9_-]+$", i, exit.TargetLocationID))
		}
	}

	return issues
}

func validateAction(a *ActionRecord) []string {
	var issues []string

	if n := utf8.RuneCountInString(a.NarrationText); n > MaxActionNarration {
		issues = append(issues, fmt.Sprintf("narrationText is %d characters, max %d", n, MaxActionNarration))
	}
	if a.LocationID != "" && !locationIDPattern.MatchString(a.LocationID) {
		issues = append(issues, fmt.Sprintf("locationId %q does not match ^[a-z0-9_-]+$", a.LocationID))
	}

	return issues
}
