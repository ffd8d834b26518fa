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

type SubmissionStore struct {
	db *pgxpool.Pool
}

func NewSubmissionStore(db *pgxpool.Pool) *SubmissionStore {
	return &SubmissionStore{db: db}
}

const submissionColumns = `id, game_id, team_id, clue_index, clue_type, status,
	text_proof, notes, photo_urls, detour_choice, roadblock_player,
	admin_comment, created_at, updated_at`

// CreateIfNoPending inserts a submission only when the team has no pending
// submission for the same clue index. The NOT EXISTS guard catches the common
// case; two racing creates can still both pass it under READ COMMITTED, so
// the partial unique index on (team_id, clue_index) WHERE status = 'pending'
// is what actually rejects the loser, surfacing as 23505.
func (s *SubmissionStore) CreateIfNoPending(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions
			(id, game_id, team_id, clue_index, clue_type, status,
			 text_proof, notes, photo_urls, detour_choice, roadblock_player)
		SELECT $1, $2, $3, $4, $5, 'pending', $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM submissions
			WHERE team_id = $3 AND clue_index = $4 AND status = 'pending'
		)
		RETURNING ` + submissionColumns
	got, err := s.scanSubmission(s.db.QueryRow(ctx, query,
		sub.ID, sub.GameID, sub.TeamID, sub.ClueIndex, sub.ClueType,
		sub.Evidence.TextProof, sub.Evidence.Notes, sub.Evidence.PhotoURLs,
		sub.Evidence.DetourChoice, sub.Evidence.RoadblockPlayer,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("team %s already has a pending submission for clue %d: %w",
					sub.TeamID, sub.ClueIndex, ErrDuplicate)
			case "23503":
				return fmt.Errorf("%s: %w", pgErr.Message, ErrInvalidReference)
			}
		}
		return err
	}
	if got == nil {
		return fmt.Errorf("team %s already has a pending submission for clue %d: %w",
			sub.TeamID, sub.ClueIndex, ErrDuplicate)
	}
	*sub = *got
	return nil
}

func (s *SubmissionStore) GetSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return s.scanSubmission(s.db.QueryRow(ctx, query, submissionID))
}

func (s *SubmissionStore) ListByTeamAndClue(ctx context.Context, teamID string, clueIndex int) ([]*models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE team_id = $1 AND clue_index = $2
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, teamID, clueIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		sub, err := s.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// UpdateEvidenceIfPending rewrites the evidence only while the submission is
// still pending. A review that slipped in first makes this a zero-row update.
func (s *SubmissionStore) UpdateEvidenceIfPending(ctx context.Context, submissionID string, ev models.Evidence) (*models.Submission, error) {
	query := `
		UPDATE submissions
		SET text_proof = $2, notes = $3, photo_urls = $4,
		    detour_choice = $5, roadblock_player = $6, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + submissionColumns
	sub, err := s.scanSubmission(s.db.QueryRow(ctx, query, submissionID,
		ev.TextProof, ev.Notes, ev.PhotoURLs, ev.DetourChoice, ev.RoadblockPlayer))
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("submission %s is not pending: %w", submissionID, ErrConditionFailed)
	}
	return sub, nil
}

// DeleteIfPending removes the submission only while pending.
func (s *SubmissionStore) DeleteIfPending(ctx context.Context, submissionID string) error {
	query := `DELETE FROM submissions WHERE id = $1 AND status = 'pending'`
	tag, err := s.db.Exec(ctx, query, submissionID)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %s is not pending: %w", submissionID, ErrConditionFailed)
	}
	return nil
}

// TransitionIfPending is the review compare-and-swap: pending -> toStatus in
// one statement. Zero rows affected means another reviewer got there first
// (or the id is unknown) and the caller must treat it as a conflict.
func (s *SubmissionStore) TransitionIfPending(ctx context.Context, submissionID, toStatus, adminComment string) (*models.Submission, error) {
	query := `
		UPDATE submissions
		SET status = $2, admin_comment = $3, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + submissionColumns
	sub, err := s.scanSubmission(s.db.QueryRow(ctx, query, submissionID, toStatus, adminComment))
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("submission %s is not pending: %w", submissionID, ErrConditionFailed)
	}
	return sub, nil
}

func (s *SubmissionStore) scanSubmission(row pgx.Row) (*models.Submission, error) {
	sub := &models.Submission{}
	err := row.Scan(
		&sub.ID,
		&sub.GameID,
		&sub.TeamID,
		&sub.ClueIndex,
		&sub.ClueType,
		&sub.Status,
		&sub.Evidence.TextProof,
		&sub.Evidence.Notes,
		&sub.Evidence.PhotoURLs,
		&sub.Evidence.DetourChoice,
		&sub.Evidence.RoadblockPlayer,
		&sub.AdminComment,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // submission not found or condition not met
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if sub.Evidence.PhotoURLs == nil {
		sub.Evidence.PhotoURLs = []string{}
	}
	return sub, nil
}
