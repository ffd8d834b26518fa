package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// ErrUnauthorized is the root of every authorization failure: no membership,
// wrong role, or not on the owning team. Handlers map it to 403.
var ErrUnauthorized = errors.New("unauthorized")

// MembershipStore is the slice of the member store the guard needs.
type MembershipStore interface {
	GetMemberByGameAndUser(ctx context.Context, gameID, userID string) (*models.Member, error)
}

// Guard resolves caller identity against game membership. Lookups happen on
// every call; nothing is cached, so a role change takes effect immediately.
type Guard struct {
	members MembershipStore
}

func NewGuard(members MembershipStore) *Guard {
	return &Guard{members: members}
}

// RequireMember passes for any active member of the game, regardless of role.
func (g *Guard) RequireMember(ctx context.Context, gameID, userID string) (*models.Member, error) {
	member, err := g.members.GetMemberByGameAndUser(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Status != models.MemberStatusActive {
		return nil, fmt.Errorf("user %s is not an active member of game %s: %w", userID, gameID, ErrUnauthorized)
	}
	return member, nil
}

// RequireGameMaster passes only for an active game master of the game. The
// role is scoped per game; a platform-wide admin gets no shortcut here.
func (g *Guard) RequireGameMaster(ctx context.Context, gameID, userID string) (*models.Member, error) {
	member, err := g.RequireMember(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != models.RoleGameMaster {
		return nil, fmt.Errorf("user %s is not a game master of game %s: %w", userID, gameID, ErrUnauthorized)
	}
	return member, nil
}

// RequireTeamMember passes only for an active member assigned to the given
// team. This is the ownership tier: game membership alone is not enough to
// touch another team's submissions.
func (g *Guard) RequireTeamMember(ctx context.Context, team *models.Team, userID string) (*models.Member, error) {
	member, err := g.RequireMember(ctx, team.GameID, userID)
	if err != nil {
		return nil, err
	}
	if member.TeamID != team.ID {
		return nil, fmt.Errorf("user %s is not on team %s: %w", userID, team.ID, ErrUnauthorized)
	}
	return member, nil
}
