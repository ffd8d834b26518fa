package models

import "time"

// Game statuses. A game moves setup -> active -> completed, never backwards.
const (
	GameStatusSetup     = "setup"
	GameStatusActive    = "active"
	GameStatusCompleted = "completed"
)

// JoinCodeLength is the exact length of a game join code.
const JoinCodeLength = 6

type Game struct {
	ID            string         `json:"id"`              // Primary key (uuid)
	Name          string         `json:"name"`            // Display name
	JoinCode      string         `json:"join_code"`       // 6-char unique code players join with
	Status        string         `json:"status"`          // 'setup', 'active', 'completed'
	ClueSequence  []ClueSnapshot `json:"clue_sequence"`   // Ordered snapshots, stored as jsonb
	VictoryConfig *VictoryConfig `json:"victory_config"`  // Optional victory page configuration
	CreatedAt     time.Time      `json:"created_at"`      // Timestamp
	UpdatedAt     time.Time      `json:"updated_at"`      // Timestamp
}

// VictoryConfig holds the per-placement messages shown once a team finishes.
// Styling of these messages is the web tier's problem.
type VictoryConfig struct {
	FirstMessage  string `json:"first_message,omitempty"`
	SecondMessage string `json:"second_message,omitempty"`
	ThirdMessage  string `json:"third_message,omitempty"`
	OtherMessage  string `json:"other_message,omitempty"`
}
