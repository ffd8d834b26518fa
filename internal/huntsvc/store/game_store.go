package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, game *models.Game) error {
	seq, err := json.Marshal(game.ClueSequence)
	if err != nil {
		return fmt.Errorf("failed to encode clue sequence: %w", err)
	}
	victory, err := json.Marshal(game.VictoryConfig)
	if err != nil {
		return fmt.Errorf("failed to encode victory config: %w", err)
	}

	query := `
		INSERT INTO games (id, name, join_code, status, clue_sequence, victory_config)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err = s.db.QueryRow(ctx, query,
		game.ID, game.Name, game.JoinCode, game.Status, seq, victory,
	).Scan(&game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("join code %s: %w", game.JoinCode, ErrDuplicate)
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `
		SELECT id, name, join_code, status, clue_sequence, victory_config, created_at, updated_at
		FROM games
		WHERE id = $1
	`
	return s.scanGame(s.db.QueryRow(ctx, query, gameID))
}

func (s *GameStore) GetGameByCode(ctx context.Context, joinCode string) (*models.Game, error) {
	query := `
		SELECT id, name, join_code, status, clue_sequence, victory_config, created_at, updated_at
		FROM games
		WHERE join_code = $1
	`
	return s.scanGame(s.db.QueryRow(ctx, query, joinCode))
}

func (s *GameStore) scanGame(row pgx.Row) (*models.Game, error) {
	game := &models.Game{}
	var seq, victory []byte
	err := row.Scan(
		&game.ID,
		&game.Name,
		&game.JoinCode,
		&game.Status,
		&seq,
		&victory,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // game not found
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if len(seq) > 0 {
		if err := json.Unmarshal(seq, &game.ClueSequence); err != nil {
			return nil, fmt.Errorf("failed to decode clue sequence: %w", err)
		}
	}
	if len(victory) > 0 && string(victory) != "null" {
		game.VictoryConfig = &models.VictoryConfig{}
		if err := json.Unmarshal(victory, game.VictoryConfig); err != nil {
			return nil, fmt.Errorf("failed to decode victory config: %w", err)
		}
	}
	return game, nil
}

// DeleteGame removes the game; its members, teams and submissions cascade.
func (s *GameStore) DeleteGame(ctx context.Context, gameID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

// SetClueSequence replaces the sequence wholesale. The write only lands while
// the game is still in setup; zero rows means the game left setup (or does
// not exist) and the caller gets ErrConditionFailed, not a silent success.
func (s *GameStore) SetClueSequence(ctx context.Context, gameID string, sequence []models.ClueSnapshot) error {
	seq, err := json.Marshal(sequence)
	if err != nil {
		return fmt.Errorf("failed to encode clue sequence: %w", err)
	}

	query := `
		UPDATE games
		SET clue_sequence = $2, updated_at = now()
		WHERE id = $1 AND status = 'setup'
	`
	tag, err := s.db.Exec(ctx, query, gameID, seq)
	if err != nil {
		return fmt.Errorf("failed to set clue sequence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s is not in setup: %w", gameID, ErrConditionFailed)
	}
	return nil
}

// SetStatus moves a game from one status to another as a single conditional
// write. Two racing callers can not both succeed: the loser sees zero rows.
func (s *GameStore) SetStatus(ctx context.Context, gameID, fromStatus, toStatus string) error {
	query := `
		UPDATE games
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`
	tag, err := s.db.Exec(ctx, query, gameID, fromStatus, toStatus)
	if err != nil {
		return fmt.Errorf("failed to set game status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s is not in status %s: %w", gameID, fromStatus, ErrConditionFailed)
	}
	return nil
}

// SetVictoryConfig stores the optional victory page configuration.
func (s *GameStore) SetVictoryConfig(ctx context.Context, gameID string, cfg *models.VictoryConfig) error {
	victory, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode victory config: %w", err)
	}

	query := `
		UPDATE games
		SET victory_config = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, gameID, victory)
	if err != nil {
		return fmt.Errorf("failed to set victory config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s not found: %w", gameID, ErrConditionFailed)
	}
	return nil
}
