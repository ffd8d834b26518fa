package models

import "time"

type Team struct {
	ID               string     `json:"id"`              // Primary key (uuid)
	GameID           string     `json:"game_id"`         // FK to games(id)
	Name             string     `json:"name"`            // Display name
	CurrentClueIndex int        `json:"current_clue_index"` // 0-based position in the clue sequence
	CompletedClues   []int      `json:"completed_clues"`    // clue indices approved so far, in order
	CompletedAt      *time.Time `json:"completed_at,omitempty"` // set when the team passes the final clue
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasCompleted reports whether the given clue index was already approved for
// this team. The advance path uses it as an idempotence guard.
func (t *Team) HasCompleted(clueIndex int) bool {
	for _, idx := range t.CompletedClues {
		if idx == clueIndex {
			return true
		}
	}
	return false
}

// IsComplete reports whether the team has passed every clue in a sequence of
// the given length. A team in a zero-clue sequence has nothing left to do and
// counts as complete; it must never advance past the sequence end.
func (t *Team) IsComplete(totalClues int) bool {
	return t.CurrentClueIndex >= totalClues
}
