package service

import (
	"context"
	"fmt"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// ProgressView is what a polling client sees: where the team is, the clue it
// faces, and the fate of its submissions for that clue. Once the team is
// done it carries the placement and victory message instead of a clue.
type ProgressView struct {
	Team           *models.Team         `json:"team"`
	TotalClues     int                  `json:"total_clues"`
	CurrentClue    *models.ClueSnapshot `json:"current_clue,omitempty"`
	Submissions    []*models.Submission `json:"submissions"`
	Complete       bool                 `json:"complete"`
	Placement      int                  `json:"placement,omitempty"`
	VictoryTier    string               `json:"victory_tier,omitempty"`
	VictoryMessage string               `json:"victory_message,omitempty"`
}

// ProgressService assembles the player-facing progression view served to the
// polling tier.
type ProgressService struct {
	teams   TeamStore
	games   GameStore
	subs    SubmissionStore
	guard   *auth.Guard
	victory *VictoryService
}

func NewProgressService(teams TeamStore, games GameStore, subs SubmissionStore, guard *auth.Guard, victory *VictoryService) *ProgressService {
	return &ProgressService{teams: teams, games: games, subs: subs, guard: guard, victory: victory}
}

// Progress returns the team's view for any active member of its game. Game
// masters and teammates of other teams may watch too; the read tier only
// requires membership.
func (s *ProgressService) Progress(ctx context.Context, teamID, requesterID string) (*ProgressView, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	if _, err := s.guard.RequireMember(ctx, team.GameID, requesterID); err != nil {
		return nil, err
	}

	game, err := s.games.GetGameByID(ctx, team.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", team.GameID, ErrNotFound)
	}

	view := &ProgressView{
		Team:        team,
		TotalClues:  len(game.ClueSequence),
		Submissions: []*models.Submission{},
		Complete:    team.IsComplete(len(game.ClueSequence)),
	}

	if view.Complete {
		placement, err := s.victory.Placement(ctx, team)
		if err != nil {
			return nil, err
		}
		view.Placement = placement
		view.VictoryTier = Tier(placement)
		view.VictoryMessage = VictoryMessage(game.VictoryConfig, placement)
		return view, nil
	}

	if team.CurrentClueIndex < len(game.ClueSequence) {
		snapshot := game.ClueSequence[team.CurrentClueIndex]
		view.CurrentClue = &snapshot
	}
	subs, err := s.subs.ListByTeamAndClue(ctx, teamID, team.CurrentClueIndex)
	if err != nil {
		return nil, err
	}
	if subs != nil {
		view.Submissions = subs
	}
	return view, nil
}
