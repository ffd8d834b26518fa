package service

import (
	"context"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// world wires every service over the in-memory fakes, the same way main wires
// them over pgx.
type world struct {
	games   *fakeGameStore
	members *fakeMemberStore
	teams   *fakeTeamStore
	subs    *fakeSubmissionStore
	library *fakeLibrary

	guard       *auth.Guard
	gameSvc     *GameService
	teamSvc     *TeamService
	subSvc      *SubmissionService
	victorySvc  *VictoryService
	progressSvc *ProgressService
}

func newWorld() *world {
	w := &world{
		games:   newFakeGameStore(),
		members: newFakeMemberStore(),
		teams:   newFakeTeamStore(),
		subs:    newFakeSubmissionStore(),
		library: &fakeLibrary{clues: map[string]models.ClueSnapshot{
			"c-route": {
				ClueID: "c-route", Type: models.ClueRouteInfo,
				Title: "Find the fountain", Description: "Photo at the fountain",
				RequiredPhotos: 1,
			},
			"c-detour": {
				ClueID: "c-detour", Type: models.ClueDetour,
				Title: "Bricks or Ice", Description: "Pick one",
				RequiredPhotos: 2, OptionATitle: "Bricks", OptionBTitle: "Ice",
			},
			"c-solo": {
				ClueID: "c-solo", Type: models.ClueRoadBlock,
				Title: "Who's hungry?", Description: "Pie time",
				RequiredPhotos: 1, SoloTask: "Eat the whole pie",
			},
		}},
	}
	w.guard = auth.NewGuard(w.members)
	w.gameSvc = NewGameService(w.games, w.members, w.teams, w.library, w.guard)
	w.teamSvc = NewTeamService(w.teams, w.games, w.members, w.guard)
	w.subSvc = NewSubmissionService(w.subs, w.teams, w.games, w.guard, w.teamSvc)
	w.victorySvc = NewVictoryService(w.teams, w.games, w.guard)
	w.progressSvc = NewProgressService(w.teams, w.games, w.subs, w.guard, w.victorySvc)
	return w
}

// seedActiveGame builds the standard fixture: a game with the 3-clue sequence
// [route-info, detour, road-block], one team with one assigned player, moved
// to active. Errors here mean the fixture itself broke, so it panics.
func (w *world) seedActiveGame(ctx context.Context, gmUser, playerUser, teamName string) (*models.Game, *models.Team, *models.Member) {
	game, err := w.gameSvc.CreateGame(ctx, "Summer Hunt", "ABC123", gmUser)
	if err != nil {
		panic(err)
	}
	game, err = w.gameSvc.SetClueSequence(ctx, game.ID, []string{"c-route", "c-detour", "c-solo"}, gmUser)
	if err != nil {
		panic(err)
	}
	team, err := w.teamSvc.CreateTeam(ctx, game.ID, teamName, gmUser)
	if err != nil {
		panic(err)
	}
	member, err := w.gameSvc.JoinByCode(ctx, "ABC123", playerUser)
	if err != nil {
		panic(err)
	}
	if err := w.teamSvc.AssignMember(ctx, member.ID, team.ID, gmUser); err != nil {
		panic(err)
	}
	if err := w.gameSvc.SetStatus(ctx, game.ID, models.GameStatusActive, gmUser); err != nil {
		panic(err)
	}
	member.TeamID = team.ID
	return game, team, member
}

func routeEvidence() models.Evidence {
	return models.Evidence{
		TextProof: "we found the fountain",
		PhotoURLs: []string{"https://blobs.example/1.jpg"},
	}
}

func detourEvidence(choice string, photoCount int) models.Evidence {
	urls := make([]string, photoCount)
	for i := range urls {
		urls[i] = "https://blobs.example/d.jpg"
	}
	return models.Evidence{
		TextProof:    "took a path",
		PhotoURLs:    urls,
		DetourChoice: choice,
	}
}

func soloEvidence(player string) models.Evidence {
	return models.Evidence{
		TextProof:       "pie is gone",
		PhotoURLs:       []string{"https://blobs.example/pie.jpg"},
		RoadblockPlayer: player,
	}
}
