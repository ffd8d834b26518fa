package models

// ClueType is the closed set of clue variants. Anything outside the three
// constants below is rejected by validation, never silently accepted.
type ClueType string

const (
	ClueRouteInfo ClueType = "route-info" // plain task with photo proof
	ClueDetour    ClueType = "detour"     // team picks one of two options
	ClueRoadBlock ClueType = "road-block" // one named player completes it solo
)

// DetourChoice values accepted on a detour submission.
const (
	DetourOptionA = "a"
	DetourOptionB = "b"
)

// ClueSnapshot is a value copy of a library clue taken at sequencing time.
// It deliberately carries no reference back to the library document: editing
// the library after a game is sequenced must not change the game.
type ClueSnapshot struct {
	ClueID         string   `json:"clue_id"` // library document id, kept for traceability only
	Type           ClueType `json:"type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredPhotos int      `json:"required_photos"`

	// Detour only: the two alternative paths.
	OptionATitle string `json:"option_a_title,omitempty"`
	OptionBTitle string `json:"option_b_title,omitempty"`

	// Road-block only: the solo task text.
	SoloTask string `json:"solo_task,omitempty"`
}
