package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/clues"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// Review decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// SubmissionService is the review workflow: teams file evidence, game masters
// approve or reject, and an approval is what moves a team forward. pending is
// the only editable state; approved and rejected are terminal.
type SubmissionService struct {
	subs    SubmissionStore
	teams   TeamStore
	games   GameStore
	guard   *auth.Guard
	teamSvc *TeamService
}

func NewSubmissionService(subs SubmissionStore, teams TeamStore, games GameStore, guard *auth.Guard, teamSvc *TeamService) *SubmissionService {
	return &SubmissionService{subs: subs, teams: teams, games: games, guard: guard, teamSvc: teamSvc}
}

// Create files a pending submission for the team's current clue. The caller
// must be an active member of the team, the game must be active, and the
// evidence must satisfy the clue snapshot's type rules exactly.
func (s *SubmissionService) Create(ctx context.Context, teamID string, clueIndex int, ev models.Evidence, requesterID string) (*models.Submission, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	if _, err := s.guard.RequireTeamMember(ctx, team, requesterID); err != nil {
		return nil, err
	}

	game, err := s.games.GetGameByID(ctx, team.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", team.GameID, ErrNotFound)
	}
	if game.Status != models.GameStatusActive {
		return nil, fmt.Errorf("game %s is not active: %w", game.ID, ErrConflict)
	}
	if clueIndex != team.CurrentClueIndex {
		return nil, fmt.Errorf("team %s is at clue %d, not %d: %w",
			teamID, team.CurrentClueIndex, clueIndex, ErrValidation)
	}
	if clueIndex >= len(game.ClueSequence) {
		return nil, fmt.Errorf("team %s already completed the hunt: %w", teamID, ErrConflict)
	}

	snapshot := game.ClueSequence[clueIndex]
	if err := clues.ValidateEvidence(snapshot, ev); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	sub := &models.Submission{
		ID:        uuid.New().String(),
		GameID:    game.ID,
		TeamID:    teamID,
		ClueIndex: clueIndex,
		ClueType:  snapshot.Type,
		Status:    models.SubmissionStatusPending,
		Evidence:  ev,
	}
	if err := s.subs.CreateIfNoPending(ctx, sub); err != nil {
		return nil, mapStoreErr(err)
	}

	log.Infof("submission %s created for team %s clue %d by user %s", sub.ID, teamID, clueIndex, requesterID)
	return sub, nil
}

// Edit replaces the evidence on a pending submission. It runs the exact same
// validation as Create, against the same clue snapshot.
func (s *SubmissionService) Edit(ctx context.Context, submissionID string, ev models.Evidence, requesterID string) (*models.Submission, error) {
	sub, team, err := s.ownedSubmission(ctx, submissionID, requesterID)
	if err != nil {
		return nil, err
	}

	game, err := s.games.GetGameByID(ctx, team.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", team.GameID, ErrNotFound)
	}
	if sub.ClueIndex >= len(game.ClueSequence) {
		return nil, fmt.Errorf("submission %s references clue %d outside the sequence: %w",
			submissionID, sub.ClueIndex, ErrConflict)
	}
	if err := clues.ValidateEvidence(game.ClueSequence[sub.ClueIndex], ev); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	updated, err := s.subs.UpdateEvidenceIfPending(ctx, submissionID, ev)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	log.Infof("submission %s edited by user %s", submissionID, requesterID)
	return updated, nil
}

// Delete removes a pending submission.
func (s *SubmissionService) Delete(ctx context.Context, submissionID, requesterID string) error {
	if _, _, err := s.ownedSubmission(ctx, submissionID, requesterID); err != nil {
		return err
	}
	if err := s.subs.DeleteIfPending(ctx, submissionID); err != nil {
		return mapStoreErr(err)
	}
	log.Infof("submission %s deleted by user %s", submissionID, requesterID)
	return nil
}

// Review settles a pending submission. Approval flips pending -> approved as
// one conditional write and then advances the team; rejection flips
// pending -> rejected and must carry a comment. Either way the transition is
// terminal: a losing concurrent reviewer sees a conflict, never a re-review.
func (s *SubmissionService) Review(ctx context.Context, submissionID, decision, adminComment, requesterID string) (*models.Submission, error) {
	sub, err := s.subs.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("submission %s: %w", submissionID, ErrNotFound)
	}
	if _, err := s.guard.RequireGameMaster(ctx, sub.GameID, requesterID); err != nil {
		return nil, err
	}

	switch decision {
	case DecisionApprove:
		return s.approve(ctx, sub, adminComment, requesterID)
	case DecisionReject:
		if strings.TrimSpace(adminComment) == "" {
			return nil, fmt.Errorf("rejection requires an admin comment: %w", ErrValidation)
		}
		updated, err := s.subs.TransitionIfPending(ctx, sub.ID, models.SubmissionStatusRejected, adminComment)
		if err != nil {
			return nil, mapStoreErr(err)
		}
		log.Infof("submission %s rejected by user %s", sub.ID, requesterID)
		return updated, nil
	default:
		return nil, fmt.Errorf("unknown review decision %q: %w", decision, ErrValidation)
	}
}

func (s *SubmissionService) approve(ctx context.Context, sub *models.Submission, adminComment, requesterID string) (*models.Submission, error) {
	team, err := s.teams.GetTeamByID(ctx, sub.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", sub.TeamID, ErrNotFound)
	}
	// No skipping ahead: only the team's current clue is approvable.
	if sub.ClueIndex != team.CurrentClueIndex {
		return nil, fmt.Errorf("submission targets clue %d but team %s is at clue %d: %w",
			sub.ClueIndex, team.ID, team.CurrentClueIndex, ErrConflict)
	}

	game, err := s.games.GetGameByID(ctx, sub.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", sub.GameID, ErrNotFound)
	}

	updated, err := s.subs.TransitionIfPending(ctx, sub.ID, models.SubmissionStatusApproved, adminComment)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if _, err := s.teamSvc.advance(ctx, team, len(game.ClueSequence)); err != nil {
		// The approval landed but the team row was already past this clue.
		// The advance guard makes this a no-op instead of a double step.
		log.Warnf("approve %s: advance skipped: %v", sub.ID, err)
	}

	log.Infof("submission %s approved by user %s, team %s advanced past clue %d",
		sub.ID, requesterID, team.ID, sub.ClueIndex)
	return updated, nil
}

// GetSubmission returns a submission to any active member of its game.
func (s *SubmissionService) GetSubmission(ctx context.Context, submissionID, requesterID string) (*models.Submission, error) {
	sub, err := s.subs.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("submission %s: %w", submissionID, ErrNotFound)
	}
	if _, err := s.guard.RequireMember(ctx, sub.GameID, requesterID); err != nil {
		return nil, err
	}
	return sub, nil
}

// ownedSubmission loads a submission and checks the caller belongs to the
// submitting team, the ownership tier shared by Edit and Delete.
func (s *SubmissionService) ownedSubmission(ctx context.Context, submissionID, requesterID string) (*models.Submission, *models.Team, error) {
	sub, err := s.subs.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, fmt.Errorf("submission %s: %w", submissionID, ErrNotFound)
	}
	team, err := s.teams.GetTeamByID(ctx, sub.TeamID)
	if err != nil {
		return nil, nil, err
	}
	if team == nil {
		return nil, nil, fmt.Errorf("team %s: %w", sub.TeamID, ErrNotFound)
	}
	if _, err := s.guard.RequireTeamMember(ctx, team, requesterID); err != nil {
		return nil, nil, err
	}
	return sub, team, nil
}
