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

type MemberStore struct {
	db *pgxpool.Pool
}

func NewMemberStore(db *pgxpool.Pool) *MemberStore {
	return &MemberStore{db: db}
}

// CreateMember enrolls a user in a game. The unique (game_id, user_id)
// constraint rejects a second join by the same user.
func (s *MemberStore) CreateMember(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (id, game_id, user_id, role, team_id, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query,
		m.ID, m.GameID, m.UserID, m.Role, m.TeamID, m.Status,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("user %s already in game %s: %w", m.UserID, m.GameID, ErrDuplicate)
			case "23503":
				return fmt.Errorf("%s: %w", pgErr.Message, ErrInvalidReference)
			}
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *MemberStore) GetMemberByID(ctx context.Context, memberID string) (*models.Member, error) {
	query := `
		SELECT id, game_id, user_id, role, COALESCE(team_id::text, ''), status, created_at, updated_at
		FROM members
		WHERE id = $1
	`
	return s.scanMember(s.db.QueryRow(ctx, query, memberID))
}

// GetMemberByGameAndUser is the membership lookup behind every authorization
// check. Returns nil when the user has no row for the game.
func (s *MemberStore) GetMemberByGameAndUser(ctx context.Context, gameID, userID string) (*models.Member, error) {
	query := `
		SELECT id, game_id, user_id, role, COALESCE(team_id::text, ''), status, created_at, updated_at
		FROM members
		WHERE game_id = $1 AND user_id = $2
	`
	return s.scanMember(s.db.QueryRow(ctx, query, gameID, userID))
}

func (s *MemberStore) ListMembersByGame(ctx context.Context, gameID string) ([]*models.Member, error) {
	query := `
		SELECT id, game_id, user_id, role, COALESCE(team_id::text, ''), status, created_at, updated_at
		FROM members
		WHERE game_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := s.scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CountAssignedPlayers counts active members of the game that sit on a team.
// Game activation requires at least one.
func (s *MemberStore) CountAssignedPlayers(ctx context.Context, gameID string) (int, error) {
	query := `
		SELECT count(*)
		FROM members
		WHERE game_id = $1 AND status = 'active' AND team_id IS NOT NULL
	`
	var n int
	if err := s.db.QueryRow(ctx, query, gameID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count assigned players: %w", err)
	}
	return n, nil
}

// AssignTeam overwrites the member's team binding. No history is kept.
func (s *MemberStore) AssignTeam(ctx context.Context, memberID, teamID string) error {
	query := `
		UPDATE members
		SET team_id = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, memberID, teamID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%s: %w", pgErr.Message, ErrInvalidReference)
		}
		return fmt.Errorf("failed to assign member to team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found: %w", memberID, ErrConditionFailed)
	}
	return nil
}

func (s *MemberStore) scanMember(row pgx.Row) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(
		&m.ID,
		&m.GameID,
		&m.UserID,
		&m.Role,
		&m.TeamID,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // member not found
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}
