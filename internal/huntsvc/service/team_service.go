package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// TeamService owns team progression: position in the clue sequence and the
// completed-clue history. Progress mutates only through advance, reached via
// the submission approval path or the game master's manual override.
type TeamService struct {
	teams   TeamStore
	games   GameStore
	members MemberStore
	guard   *auth.Guard
}

func NewTeamService(teams TeamStore, games GameStore, members MemberStore, guard *auth.Guard) *TeamService {
	return &TeamService{teams: teams, games: games, members: members, guard: guard}
}

// CreateTeam creates a team at the start of the sequence.
func (s *TeamService) CreateTeam(ctx context.Context, gameID, name, requesterID string) (*models.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("team name is required: %w", ErrValidation)
	}
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if _, err := s.guard.RequireGameMaster(ctx, gameID, requesterID); err != nil {
		return nil, err
	}

	team := &models.Team{
		ID:               uuid.New().String(),
		GameID:           gameID,
		Name:             name,
		CurrentClueIndex: 0,
		CompletedClues:   []int{},
	}
	if err := s.teams.CreateTeam(ctx, team); err != nil {
		return nil, mapStoreErr(err)
	}

	log.Infof("team %s (%s) created in game %s", team.ID, name, gameID)
	return team, nil
}

// AssignMember binds a member to a team, overwriting any prior binding. The
// team must belong to the member's game.
func (s *TeamService) AssignMember(ctx context.Context, memberID, teamID, requesterID string) error {
	member, err := s.members.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	if team.GameID != member.GameID {
		return fmt.Errorf("team %s is not part of game %s: %w", teamID, member.GameID, ErrValidation)
	}
	if _, err := s.guard.RequireGameMaster(ctx, member.GameID, requesterID); err != nil {
		return err
	}

	if err := s.members.AssignTeam(ctx, memberID, teamID); err != nil {
		return mapStoreErr(err)
	}
	log.Infof("member %s assigned to team %s by user %s", memberID, teamID, requesterID)
	return nil
}

// GetTeam returns the team to any active member of its game.
func (s *TeamService) GetTeam(ctx context.Context, teamID, requesterID string) (*models.Team, error) {
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
	return team, nil
}

// ManualAdvance is the game master override: it pushes the team past its
// current clue without a submission.
func (s *TeamService) ManualAdvance(ctx context.Context, teamID, requesterID string) (*models.Team, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	if _, err := s.guard.RequireGameMaster(ctx, team.GameID, requesterID); err != nil {
		return nil, err
	}
	game, err := s.games.GetGameByID(ctx, team.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", team.GameID, ErrNotFound)
	}
	// Same rule as filing a submission: progress only moves in active games.
	if game.Status != models.GameStatusActive {
		return nil, fmt.Errorf("game %s is not active: %w", game.ID, ErrConflict)
	}

	updated, err := s.advance(ctx, team, len(game.ClueSequence))
	if err != nil {
		return nil, err
	}
	log.Infof("team %s manually advanced to clue %d by user %s", teamID, updated.CurrentClueIndex, requesterID)
	return updated, nil
}

// advance moves the team exactly one clue forward. The store performs the
// conditional write that keeps it safe and idempotent under races; this
// wrapper only refuses teams that are already done and decides whether this
// step finishes the hunt.
func (s *TeamService) advance(ctx context.Context, team *models.Team, totalClues int) (*models.Team, error) {
	if team.IsComplete(totalClues) {
		return nil, fmt.Errorf("team %s already completed the hunt: %w", team.ID, ErrConflict)
	}
	clueIndex := team.CurrentClueIndex
	markComplete := clueIndex+1 >= totalClues

	updated, err := s.teams.Advance(ctx, team.ID, clueIndex, markComplete)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if markComplete {
		log.Infof("team %s completed the hunt", team.ID)
	}
	return updated, nil
}
