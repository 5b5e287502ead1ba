// Package scene defines the structured world-state records produced by the
// narrative backend: full scene descriptions and action-only results.
package scene

// Direction is a movement direction on an exit. The set of valid values is
// fixed; ordinal directions (northeast etc.) are intentionally absent.
type Direction string

const (
	North   Direction = "north"
	South   Direction = "south"
	East    Direction = "east"
	West    Direction = "west"
	Up      Direction = "up"
	Down    Direction = "down"
	In      Direction = "in"
	Out     Direction = "out"
	Left    Direction = "left"
	Right   Direction = "right"
	Forward Direction = "forward"
	Back    Direction = "back"
)

var validDirections = map[Direction]bool{
	North: true, South: true, East: true, West: true,
	Up: true, Down: true, In: true, Out: true,
	Left: true, Right: true, Forward: true, Back: true,
}

// IsValid reports whether d is one of the allowed movement directions.
func (d Direction) IsValid() bool {
	return validDirections[d]
}

// MusicMood selects the ambient music style for a scene.
type MusicMood string

const (
	MoodEntrance    MusicMood = "entrance"
	MoodExploration MusicMood = "exploration"
	MoodCombat      MusicMood = "combat"
	MoodVictory     MusicMood = "victory"
	MoodDungeon     MusicMood = "dungeon"
	MoodForest      MusicMood = "forest"
	MoodTown        MusicMood = "town"
	MoodMystery     MusicMood = "mystery"
	MoodCastle      MusicMood = "castle"
	MoodUnderwater  MusicMood = "underwater"
	MoodTemple      MusicMood = "temple"
	MoodBoss        MusicMood = "boss"
	MoodStealth     MusicMood = "stealth"
	MoodTreasure    MusicMood = "treasure"
	MoodDanger      MusicMood = "danger"
	MoodPeaceful    MusicMood = "peaceful"
)

var validMoods = map[MusicMood]bool{
	MoodEntrance: true, MoodExploration: true, MoodCombat: true, MoodVictory: true,
	MoodDungeon: true, MoodForest: true, MoodTown: true, MoodMystery: true,
	MoodCastle: true, MoodUnderwater: true, MoodTemple: true, MoodBoss: true,
	MoodStealth: true, MoodTreasure: true, MoodDanger: true, MoodPeaceful: true,
}

// IsValid reports whether m is one of the allowed music moods.
func (m MusicMood) IsValid() bool {
	return validMoods[m]
}

// Exit is one way out of a scene.
type Exit struct {
	Direction        Direction `json:"direction"`
	TargetLocationID string    `json:"locationId"`
	Description      string    `json:"description,omitempty"`
}

// SceneRecord is a full location description, including the hints used to
// generate scene art and ambient music.
type SceneRecord struct {
	LocationID       string    `json:"locationId"`
	LocationName     string    `json:"locationName"`
	NarrationText    string    `json:"narrationText,omitempty"`
	ImageDescription string    `json:"imageDescription"`
	MusicDescription string    `json:"musicDescription"`
	MusicMood        MusicMood `json:"musicMood"`
	Exits            []Exit    `json:"exits"`
	Items            []string  `json:"items"`
	NPCs             []string  `json:"npcs"`
}

// ActionRecord reports the result of an interaction that does not change
// location.
type ActionRecord struct {
	NarrationText string `json:"narrationText,omitempty"`
	LocationID    string `json:"locationId,omitempty"`
	ActionTag     string `json:"actionTag,omitempty"`
}

// GameResponse is the decoded result of one backend turn: either a full
// scene or an action. The interface is sealed so callers must type-switch
// over exactly these two records.
type GameResponse interface {
	// Narration returns the player-visible text carried by the record.
	Narration() string

	// Location returns the location id the record refers to.
	Location() string

	isGameResponse()
}

func (s *SceneRecord) Narration() string { return s.NarrationText }
func (s *SceneRecord) Location() string  { return s.LocationID }
func (s *SceneRecord) isGameResponse()   {}

func (a *ActionRecord) Narration() string { return a.NarrationText }
func (a *ActionRecord) Location() string  { return a.LocationID }
func (a *ActionRecord) isGameResponse()   {}
