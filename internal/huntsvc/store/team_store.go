package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

type TeamStore struct {
	db *pgxpool.Pool
}

func NewTeamStore(db *pgxpool.Pool) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeam(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, game_id, name, current_clue_index, completed_clues)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		team.ID, team.GameID, team.Name, team.CurrentClueIndex, team.CompletedClues,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%s: %w", pgErr.Message, ErrInvalidReference)
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (s *TeamStore) GetTeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	query := `
		SELECT id, game_id, name, current_clue_index, completed_clues, completed_at, created_at, updated_at
		FROM teams
		WHERE id = $1
	`
	return s.scanTeam(s.db.QueryRow(ctx, query, teamID))
}

func (s *TeamStore) ListTeamsByGame(ctx context.Context, gameID string) ([]*models.Team, error) {
	query := `
		SELECT id, game_id, name, current_clue_index, completed_clues, completed_at, created_at, updated_at
		FROM teams
		WHERE game_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t, err := s.scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Advance moves the team past clueIndex as one conditional write. The WHERE
// clause pins the current index to clueIndex and refuses an index already in
// completed_clues, so a double-invocation for the same clue hits zero rows
// and surfaces as ErrConditionFailed instead of advancing twice.
// markComplete stamps completed_at when this advance passes the final clue.
func (s *TeamStore) Advance(ctx context.Context, teamID string, clueIndex int, markComplete bool) (*models.Team, error) {
	query := `
		UPDATE teams
		SET current_clue_index = current_clue_index + 1,
		    completed_clues = array_append(completed_clues, $2),
		    completed_at = CASE WHEN $3 THEN now() ELSE completed_at END,
		    updated_at = now()
		WHERE id = $1
		  AND current_clue_index = $2
		  AND NOT ($2 = ANY(completed_clues))
		RETURNING id, game_id, name, current_clue_index, completed_clues, completed_at, created_at, updated_at
	`
	team, err := s.scanTeam(s.db.QueryRow(ctx, query, teamID, clueIndex, markComplete))
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s is not at clue %d: %w", teamID, clueIndex, ErrConditionFailed)
	}
	return team, nil
}

// CountCompletedBefore counts teams in the game that finished strictly
// earlier than the given team. Placement is derived from it.
func (s *TeamStore) CountCompletedBefore(ctx context.Context, gameID, teamID string) (int, error) {
	query := `
		SELECT count(*)
		FROM teams other, teams t
		WHERE t.id = $2
		  AND other.game_id = $1
		  AND other.id <> t.id
		  AND other.completed_at IS NOT NULL
		  AND other.completed_at < t.completed_at
	`
	var n int
	if err := s.db.QueryRow(ctx, query, gameID, teamID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count earlier finishers: %w", err)
	}
	return n, nil
}

func (s *TeamStore) scanTeam(row pgx.Row) (*models.Team, error) {
	team := &models.Team{}
	err := row.Scan(
		&team.ID,
		&team.GameID,
		&team.Name,
		&team.CurrentClueIndex,
		&team.CompletedClues,
		&team.CompletedAt,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // team not found
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team.CompletedClues == nil {
		team.CompletedClues = []int{}
	}
	return team, nil
}
