package service

import (
	"context"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// Store interfaces are declared here, on the consumer side; the pgx types in
// the store package satisfy them and the tests swap in in-memory fakes.

type GameStore interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, gameID string) (*models.Game, error)
	GetGameByCode(ctx context.Context, joinCode string) (*models.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	SetClueSequence(ctx context.Context, gameID string, sequence []models.ClueSnapshot) error
	SetStatus(ctx context.Context, gameID, fromStatus, toStatus string) error
	SetVictoryConfig(ctx context.Context, gameID string, cfg *models.VictoryConfig) error
}

type MemberStore interface {
	CreateMember(ctx context.Context, m *models.Member) error
	GetMemberByID(ctx context.Context, memberID string) (*models.Member, error)
	GetMemberByGameAndUser(ctx context.Context, gameID, userID string) (*models.Member, error)
	ListMembersByGame(ctx context.Context, gameID string) ([]*models.Member, error)
	CountAssignedPlayers(ctx context.Context, gameID string) (int, error)
	AssignTeam(ctx context.Context, memberID, teamID string) error
}

type TeamStore interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeamByID(ctx context.Context, teamID string) (*models.Team, error)
	ListTeamsByGame(ctx context.Context, gameID string) ([]*models.Team, error)
	Advance(ctx context.Context, teamID string, clueIndex int, markComplete bool) (*models.Team, error)
	CountCompletedBefore(ctx context.Context, gameID, teamID string) (int, error)
}

type SubmissionStore interface {
	CreateIfNoPending(ctx context.Context, sub *models.Submission) error
	GetSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error)
	ListByTeamAndClue(ctx context.Context, teamID string, clueIndex int) ([]*models.Submission, error)
	UpdateEvidenceIfPending(ctx context.Context, submissionID string, ev models.Evidence) (*models.Submission, error)
	DeleteIfPending(ctx context.Context, submissionID string) error
	TransitionIfPending(ctx context.Context, submissionID, toStatus, adminComment string) (*models.Submission, error)
}

// ClueLibrary resolves library clue ids into value snapshots at sequencing
// time. The Mongo-backed implementation lives in the library package.
type ClueLibrary interface {
	GetClue(ctx context.Context, clueID string) (*models.ClueSnapshot, error)
}
