package service

import (
	"context"
	"fmt"
	"time"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
	"github.com/huntmaster/hunt-services/internal/huntsvc/store"
)

// In-memory stores that keep the same conditional-write semantics as the pgx
// implementations: guarded writes that miss return store.ErrConditionFailed,
// duplicates return store.ErrDuplicate.

type fakeGameStore struct {
	games map[string]*models.Game
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{games: map[string]*models.Game{}}
}

func (f *fakeGameStore) CreateGame(ctx context.Context, game *models.Game) error {
	for _, g := range f.games {
		if g.JoinCode == game.JoinCode {
			return fmt.Errorf("join code %s: %w", game.JoinCode, store.ErrDuplicate)
		}
	}
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	cp := *game
	f.games[game.ID] = &cp
	return nil
}

func (f *fakeGameStore) GetGameByID(ctx context.Context, gameID string) (*models.Game, error) {
	g, ok := f.games[gameID]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGameStore) GetGameByCode(ctx context.Context, joinCode string) (*models.Game, error) {
	for _, g := range f.games {
		if g.JoinCode == joinCode {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeGameStore) DeleteGame(ctx context.Context, gameID string) error {
	delete(f.games, gameID)
	return nil
}

func (f *fakeGameStore) SetClueSequence(ctx context.Context, gameID string, sequence []models.ClueSnapshot) error {
	g, ok := f.games[gameID]
	if !ok || g.Status != models.GameStatusSetup {
		return fmt.Errorf("game %s is not in setup: %w", gameID, store.ErrConditionFailed)
	}
	g.ClueSequence = append([]models.ClueSnapshot{}, sequence...)
	g.UpdatedAt = time.Now()
	return nil
}

func (f *fakeGameStore) SetStatus(ctx context.Context, gameID, fromStatus, toStatus string) error {
	g, ok := f.games[gameID]
	if !ok || g.Status != fromStatus {
		return fmt.Errorf("game %s is not in status %s: %w", gameID, fromStatus, store.ErrConditionFailed)
	}
	g.Status = toStatus
	g.UpdatedAt = time.Now()
	return nil
}

func (f *fakeGameStore) SetVictoryConfig(ctx context.Context, gameID string, cfg *models.VictoryConfig) error {
	g, ok := f.games[gameID]
	if !ok {
		return fmt.Errorf("game %s not found: %w", gameID, store.ErrConditionFailed)
	}
	g.VictoryConfig = cfg
	return nil
}

type fakeMemberStore struct {
	members map[string]*models.Member
	// when set, the next CreateMember fails with it once
	createErr error
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: map[string]*models.Member{}}
}

func (f *fakeMemberStore) CreateMember(ctx context.Context, m *models.Member) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	for _, existing := range f.members {
		if existing.GameID == m.GameID && existing.UserID == m.UserID {
			return fmt.Errorf("user %s already in game %s: %w", m.UserID, m.GameID, store.ErrDuplicate)
		}
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMemberStore) GetMemberByID(ctx context.Context, memberID string) (*models.Member, error) {
	m, ok := f.members[memberID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberStore) GetMemberByGameAndUser(ctx context.Context, gameID, userID string) (*models.Member, error) {
	for _, m := range f.members {
		if m.GameID == gameID && m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberStore) ListMembersByGame(ctx context.Context, gameID string) ([]*models.Member, error) {
	var out []*models.Member
	for _, m := range f.members {
		if m.GameID == gameID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMemberStore) CountAssignedPlayers(ctx context.Context, gameID string) (int, error) {
	n := 0
	for _, m := range f.members {
		if m.GameID == gameID && m.Status == models.MemberStatusActive && m.TeamID != "" {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberStore) AssignTeam(ctx context.Context, memberID, teamID string) error {
	m, ok := f.members[memberID]
	if !ok {
		return fmt.Errorf("member %s not found: %w", memberID, store.ErrConditionFailed)
	}
	m.TeamID = teamID
	m.UpdatedAt = time.Now()
	return nil
}

type fakeTeamStore struct {
	teams map[string]*models.Team
	// monotonic completion stamps so placement ordering is deterministic
	clock time.Time
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{
		teams: map[string]*models.Team{},
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTeamStore) CreateTeam(ctx context.Context, team *models.Team) error {
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt
	cp := *team
	cp.CompletedClues = append([]int{}, team.CompletedClues...)
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamStore) GetTeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.CompletedClues = append([]int{}, t.CompletedClues...)
	return &cp, nil
}

func (f *fakeTeamStore) ListTeamsByGame(ctx context.Context, gameID string) ([]*models.Team, error) {
	var out []*models.Team
	for _, t := range f.teams {
		if t.GameID == gameID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTeamStore) Advance(ctx context.Context, teamID string, clueIndex int, markComplete bool) (*models.Team, error) {
	t, ok := f.teams[teamID]
	if !ok || t.CurrentClueIndex != clueIndex || t.HasCompleted(clueIndex) {
		return nil, fmt.Errorf("team %s is not at clue %d: %w", teamID, clueIndex, store.ErrConditionFailed)
	}
	t.CurrentClueIndex++
	t.CompletedClues = append(t.CompletedClues, clueIndex)
	if markComplete {
		f.clock = f.clock.Add(time.Minute)
		stamp := f.clock
		t.CompletedAt = &stamp
	}
	t.UpdatedAt = time.Now()
	return f.GetTeamByID(ctx, teamID)
}

func (f *fakeTeamStore) CountCompletedBefore(ctx context.Context, gameID, teamID string) (int, error) {
	me, ok := f.teams[teamID]
	if !ok || me.CompletedAt == nil {
		return 0, nil
	}
	n := 0
	for id, t := range f.teams {
		if id != teamID && t.GameID == gameID && t.CompletedAt != nil && t.CompletedAt.Before(*me.CompletedAt) {
			n++
		}
	}
	return n, nil
}

type fakeSubmissionStore struct {
	subs map[string]*models.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{subs: map[string]*models.Submission{}}
}

func (f *fakeSubmissionStore) CreateIfNoPending(ctx context.Context, sub *models.Submission) error {
	for _, s := range f.subs {
		if s.TeamID == sub.TeamID && s.ClueIndex == sub.ClueIndex && s.Status == models.SubmissionStatusPending {
			return fmt.Errorf("team %s already has a pending submission for clue %d: %w",
				sub.TeamID, sub.ClueIndex, store.ErrDuplicate)
		}
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubmissionStore) GetSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	s, ok := f.subs[submissionID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubmissionStore) ListByTeamAndClue(ctx context.Context, teamID string, clueIndex int) ([]*models.Submission, error) {
	var out []*models.Submission
	for _, s := range f.subs {
		if s.TeamID == teamID && s.ClueIndex == clueIndex {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) UpdateEvidenceIfPending(ctx context.Context, submissionID string, ev models.Evidence) (*models.Submission, error) {
	s, ok := f.subs[submissionID]
	if !ok || s.Status != models.SubmissionStatusPending {
		return nil, fmt.Errorf("submission %s is not pending: %w", submissionID, store.ErrConditionFailed)
	}
	s.Evidence = ev
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (f *fakeSubmissionStore) DeleteIfPending(ctx context.Context, submissionID string) error {
	s, ok := f.subs[submissionID]
	if !ok || s.Status != models.SubmissionStatusPending {
		return fmt.Errorf("submission %s is not pending: %w", submissionID, store.ErrConditionFailed)
	}
	delete(f.subs, submissionID)
	return nil
}

func (f *fakeSubmissionStore) TransitionIfPending(ctx context.Context, submissionID, toStatus, adminComment string) (*models.Submission, error) {
	s, ok := f.subs[submissionID]
	if !ok || s.Status != models.SubmissionStatusPending {
		return nil, fmt.Errorf("submission %s is not pending: %w", submissionID, store.ErrConditionFailed)
	}
	s.Status = toStatus
	s.AdminComment = adminComment
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

// fakeLibrary serves clue snapshots from a map.
type fakeLibrary struct {
	clues map[string]models.ClueSnapshot
}

func (f *fakeLibrary) GetClue(ctx context.Context, clueID string) (*models.ClueSnapshot, error) {
	c, ok := f.clues[clueID]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}
