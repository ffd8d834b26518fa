package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/clues"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// GameService owns the game lifecycle: creation, the clue sequence snapshot
// and the setup -> active -> completed status graph.
type GameService struct {
	games   GameStore
	members MemberStore
	teams   TeamStore
	library ClueLibrary
	guard   *auth.Guard
}

func NewGameService(games GameStore, members MemberStore, teams TeamStore, library ClueLibrary, guard *auth.Guard) *GameService {
	return &GameService{games: games, members: members, teams: teams, library: library, guard: guard}
}

// CreateGame creates a game in setup with an empty sequence and enrolls the
// creator as its first game master. An empty joinCode gets a generated one.
func (s *GameService) CreateGame(ctx context.Context, name, joinCode, creatorID string) (*models.Game, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("game name is required: %w", ErrValidation)
	}

	generated := joinCode == ""
	if generated {
		joinCode = generateJoinCode()
	}
	if len(joinCode) != models.JoinCodeLength {
		return nil, fmt.Errorf("join code must be exactly %d characters: %w", models.JoinCodeLength, ErrValidation)
	}

	game := &models.Game{
		ID:           uuid.New().String(),
		Name:         name,
		JoinCode:     strings.ToUpper(joinCode),
		Status:       models.GameStatusSetup,
		ClueSequence: []models.ClueSnapshot{},
	}

	err := s.games.CreateGame(ctx, game)
	for attempt := 0; generated && isConflict(err) && attempt < 3; attempt++ {
		game.JoinCode = generateJoinCode()
		err = s.games.CreateGame(ctx, game)
	}
	if err != nil {
		return nil, mapStoreErr(err)
	}

	creator := &models.Member{
		ID:     uuid.New().String(),
		GameID: game.ID,
		UserID: creatorID,
		Role:   models.RoleGameMaster,
		Status: models.MemberStatusActive,
	}
	if err := s.members.CreateMember(ctx, creator); err != nil {
		// A game without its game master can never be administered; the row
		// must not outlive the failed enrollment.
		if derr := s.games.DeleteGame(ctx, game.ID); derr != nil {
			log.Errorf("failed to remove game %s after enrollment failure: %v", game.ID, derr)
		}
		return nil, mapStoreErr(err)
	}

	log.Infof("game %s created by user %s with code %s", game.ID, creatorID, game.JoinCode)
	return game, nil
}

// GetGame returns the game to any of its active members.
func (s *GameService) GetGame(ctx context.Context, gameID, requesterID string) (*models.Game, error) {
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
	return game, nil
}

// JoinByCode enrolls the caller as a player in the game behind the code.
func (s *GameService) JoinByCode(ctx context.Context, joinCode, userID string) (*models.Member, error) {
	game, err := s.games.GetGameByCode(ctx, strings.ToUpper(joinCode))
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("no game with code %s: %w", joinCode, ErrNotFound)
	}

	member := &models.Member{
		ID:     uuid.New().String(),
		GameID: game.ID,
		UserID: userID,
		Role:   models.RolePlayer,
		Status: models.MemberStatusActive,
	}
	if err := s.members.CreateMember(ctx, member); err != nil {
		return nil, mapStoreErr(err)
	}

	log.Infof("user %s joined game %s", userID, game.ID)
	return member, nil
}

// SetClueSequence resolves library clue ids into value snapshots and replaces
// the game's sequence wholesale. Only a game master may call it, and only
// while the game is in setup. Later edits to the library never reach the
// stored copies.
func (s *GameService) SetClueSequence(ctx context.Context, gameID string, clueIDs []string, requesterID string) (*models.Game, error) {
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
	if len(clueIDs) == 0 {
		return nil, fmt.Errorf("clue sequence must not be empty: %w", ErrValidation)
	}

	sequence := make([]models.ClueSnapshot, 0, len(clueIDs))
	for _, clueID := range clueIDs {
		snapshot, err := s.library.GetClue(ctx, clueID)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			return nil, fmt.Errorf("clue %s not in library: %w", clueID, ErrValidation)
		}
		if err := clues.ValidateSnapshot(*snapshot); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrValidation)
		}
		sequence = append(sequence, *snapshot)
	}

	if err := s.games.SetClueSequence(ctx, gameID, sequence); err != nil {
		return nil, mapStoreErr(err)
	}

	game.ClueSequence = sequence
	log.Infof("game %s sequence set to %d clues by user %s", gameID, len(sequence), requesterID)
	return game, nil
}

// SetStatus drives the status graph. Only forward transitions exist:
// setup -> active -> completed. Activation requires at least one team and at
// least one assigned player, otherwise the hunt would start unwinnable.
func (s *GameService) SetStatus(ctx context.Context, gameID, newStatus, requesterID string) error {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if _, err := s.guard.RequireGameMaster(ctx, gameID, requesterID); err != nil {
		return err
	}

	var fromStatus string
	switch newStatus {
	case models.GameStatusActive:
		fromStatus = models.GameStatusSetup
		if err := s.checkActivation(ctx, game); err != nil {
			return err
		}
	case models.GameStatusCompleted:
		fromStatus = models.GameStatusActive
	default:
		return fmt.Errorf("cannot transition a game to status %q: %w", newStatus, ErrValidation)
	}

	if err := s.games.SetStatus(ctx, gameID, fromStatus, newStatus); err != nil {
		return mapStoreErr(err)
	}

	log.Infof("game %s moved to %s by user %s", gameID, newStatus, requesterID)
	return nil
}

func (s *GameService) checkActivation(ctx context.Context, game *models.Game) error {
	if len(game.ClueSequence) == 0 {
		return fmt.Errorf("cannot activate a game without clues: %w", ErrValidation)
	}
	teams, err := s.teams.ListTeamsByGame(ctx, game.ID)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		return fmt.Errorf("cannot activate a game without teams: %w", ErrValidation)
	}
	assigned, err := s.members.CountAssignedPlayers(ctx, game.ID)
	if err != nil {
		return err
	}
	if assigned == 0 {
		return fmt.Errorf("cannot activate a game with no assigned players: %w", ErrValidation)
	}
	return nil
}

// SetVictoryConfig stores the optional victory page messages.
func (s *GameService) SetVictoryConfig(ctx context.Context, gameID string, cfg *models.VictoryConfig, requesterID string) error {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if _, err := s.guard.RequireGameMaster(ctx, gameID, requesterID); err != nil {
		return err
	}
	return mapStoreErr(s.games.SetVictoryConfig(ctx, gameID, cfg))
}

func isConflict(err error) bool {
	return err != nil && errors.Is(mapStoreErr(err), ErrConflict)
}

const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateJoinCode derives a 6-char code from fresh UUID randomness. The
// alphabet skips lookalike characters since players type these by hand.
func generateJoinCode() string {
	id := uuid.New()
	code := make([]byte, models.JoinCodeLength)
	for i := range code {
		code[i] = joinCodeAlphabet[int(id[i])%len(joinCodeAlphabet)]
	}
	return string(code)
}
