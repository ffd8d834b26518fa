package models

import "time"

// Member roles are scoped to one game. The same user can be a game master in
// one game and a plain player in another.
const (
	RoleGameMaster = "game_master"
	RolePlayer     = "player"
)

// Member statuses.
const (
	MemberStatusActive  = "active"
	MemberStatusRemoved = "removed"
)

type Member struct {
	ID        string    `json:"id"`                // Primary key (uuid)
	GameID    string    `json:"game_id"`           // FK to games(id)
	UserID    string    `json:"user_id"`           // Resolved caller identity (external auth)
	Role      string    `json:"role"`              // 'game_master' or 'player'
	TeamID    string    `json:"team_id,omitempty"` // FK to teams(id), empty until assigned
	Status    string    `json:"status"`            // 'active', 'removed'
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
