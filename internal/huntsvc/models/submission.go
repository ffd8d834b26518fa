package models

import "time"

// Submission statuses. 'pending' is the only non-terminal state: a rejected
// submission stays rejected and the team files a fresh one.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

type Submission struct {
	ID        string   `json:"id"`         // Primary key (uuid)
	GameID    string   `json:"game_id"`    // FK to games(id)
	TeamID    string   `json:"team_id"`    // FK to teams(id)
	ClueIndex int      `json:"clue_index"` // Position in the game's clue sequence
	ClueType  ClueType `json:"clue_type"`  // Copied from the snapshot at create time
	Status    string   `json:"status"`     // 'pending', 'approved', 'rejected'

	Evidence Evidence `json:"evidence"`

	AdminComment string    `json:"admin_comment,omitempty"` // mandatory on rejection
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Evidence is the proof package a team attaches to a submission. Which fields
// are mandatory depends on the clue type, see the clues package.
type Evidence struct {
	TextProof       string   `json:"text_proof"`
	Notes           string   `json:"notes,omitempty"`
	PhotoURLs       []string `json:"photo_urls"`
	DetourChoice    string   `json:"detour_choice,omitempty"`    // detour: 'a' or 'b'
	RoadblockPlayer string   `json:"roadblock_player,omitempty"` // road-block: solo player name
}
