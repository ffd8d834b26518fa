package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// Placement display tiers.
const (
	TierFirst  = "first"
	TierSecond = "second"
	TierThird  = "third"
	TierOther  = "other"
)

// VictoryService derives placements for teams that completed the sequence.
// Ordering comes from the completed_at timestamp stamped by the final
// advance, not from list position.
type VictoryService struct {
	teams TeamStore
	games GameStore
	guard *auth.Guard
}

func NewVictoryService(teams TeamStore, games GameStore, guard *auth.Guard) *VictoryService {
	return &VictoryService{teams: teams, games: games, guard: guard}
}

// Placement returns the team's rank: 1 + the number of other teams in the
// game that finished strictly earlier. Zero means not finished yet.
func (s *VictoryService) Placement(ctx context.Context, team *models.Team) (int, error) {
	if team.CompletedAt == nil {
		return 0, nil
	}
	earlier, err := s.teams.CountCompletedBefore(ctx, team.GameID, team.ID)
	if err != nil {
		return 0, err
	}
	return earlier + 1, nil
}

// Tier maps a placement to one of the four display configurations.
func Tier(placement int) string {
	switch placement {
	case 1:
		return TierFirst
	case 2:
		return TierSecond
	case 3:
		return TierThird
	default:
		return TierOther
	}
}

// VictoryMessage picks the configured message for a placement, if any.
func VictoryMessage(cfg *models.VictoryConfig, placement int) string {
	if cfg == nil {
		return ""
	}
	switch Tier(placement) {
	case TierFirst:
		return cfg.FirstMessage
	case TierSecond:
		return cfg.SecondMessage
	case TierThird:
		return cfg.ThirdMessage
	default:
		return cfg.OtherMessage
	}
}

// Standing is one row of a game's scoreboard.
type Standing struct {
	TeamID           string `json:"team_id"`
	TeamName         string `json:"team_name"`
	CurrentClueIndex int    `json:"current_clue_index"`
	Completed        bool   `json:"completed"`
	Placement        int    `json:"placement,omitempty"` // only for completed teams
}

// Standings lists the game's teams: finishers first ordered by completion
// time, the rest ordered by how far they got.
func (s *VictoryService) Standings(ctx context.Context, gameID, requesterID string) ([]Standing, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if _, err := s.guard.RequireMember(ctx, gameID, requesterID); err != nil {
		return nil, err
	}

	teams, err := s.teams.ListTeamsByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		switch {
		case a.CompletedAt != nil && b.CompletedAt != nil:
			return a.CompletedAt.Before(*b.CompletedAt)
		case a.CompletedAt != nil:
			return true
		case b.CompletedAt != nil:
			return false
		default:
			return a.CurrentClueIndex > b.CurrentClueIndex
		}
	})

	standings := make([]Standing, 0, len(teams))
	placement := 0
	for _, t := range teams {
		row := Standing{
			TeamID:           t.ID,
			TeamName:         t.Name,
			CurrentClueIndex: t.CurrentClueIndex,
			Completed:        t.CompletedAt != nil,
		}
		if t.CompletedAt != nil {
			placement++
			row.Placement = placement
		}
		standings = append(standings, row)
	}
	return standings, nil
}
