package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

type GameServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	w   *world
}

func (s *GameServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.w = newWorld()
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) TestCreateGame() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Summer Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)

	s.Equal(models.GameStatusSetup, game.Status)
	s.Equal("ABC123", game.JoinCode)
	s.Empty(game.ClueSequence)

	// creator is enrolled as the sole game master
	member, err := s.w.members.GetMemberByGameAndUser(s.ctx, game.ID, "user-gm")
	s.Require().NoError(err)
	s.Require().NotNil(member)
	s.Equal(models.RoleGameMaster, member.Role)
	s.Equal(models.MemberStatusActive, member.Status)
}

func (s *GameServiceTestSuite) TestCreateGameRejectsBadCode() {
	_, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC", "user-gm")
	s.ErrorIs(err, ErrValidation)

	_, err = s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC1234", "user-gm")
	s.ErrorIs(err, ErrValidation)

	_, err = s.w.gameSvc.CreateGame(s.ctx, "", "ABC123", "user-gm")
	s.ErrorIs(err, ErrValidation)
}

func (s *GameServiceTestSuite) TestCreateGameDuplicateCode() {
	_, err := s.w.gameSvc.CreateGame(s.ctx, "First", "ABC123", "user-1")
	s.Require().NoError(err)

	_, err = s.w.gameSvc.CreateGame(s.ctx, "Second", "ABC123", "user-2")
	s.ErrorIs(err, ErrConflict)
}

func (s *GameServiceTestSuite) TestCreateGameRemovedWhenEnrollmentFails() {
	s.w.members.createErr = errors.New("members insert failed")

	_, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().Error(err)

	// no orphaned game that nobody could ever administer
	game, err := s.w.games.GetGameByCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Nil(game)
}

func (s *GameServiceTestSuite) TestCreateGameGeneratesCode() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "", "user-gm")
	s.Require().NoError(err)
	s.Len(game.JoinCode, models.JoinCodeLength)
}

func (s *GameServiceTestSuite) TestJoinByCode() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "XYZ789", "user-gm")
	s.Require().NoError(err)

	member, err := s.w.gameSvc.JoinByCode(s.ctx, "XYZ789", "user-player")
	s.Require().NoError(err)
	s.Equal(game.ID, member.GameID)
	s.Equal(models.RolePlayer, member.Role)

	// joining twice is a conflict
	_, err = s.w.gameSvc.JoinByCode(s.ctx, "XYZ789", "user-player")
	s.ErrorIs(err, ErrConflict)

	// unknown code
	_, err = s.w.gameSvc.JoinByCode(s.ctx, "NOPE99", "user-x")
	s.ErrorIs(err, ErrNotFound)
}

func (s *GameServiceTestSuite) TestSetClueSequence() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)

	game, err = s.w.gameSvc.SetClueSequence(s.ctx, game.ID, []string{"c-route", "c-detour", "c-solo"}, "user-gm")
	s.Require().NoError(err)
	s.Require().Len(game.ClueSequence, 3)
	s.Equal(models.ClueRouteInfo, game.ClueSequence[0].Type)
	s.Equal(models.ClueDetour, game.ClueSequence[1].Type)
	s.Equal(models.ClueRoadBlock, game.ClueSequence[2].Type)
}

func (s *GameServiceTestSuite) TestSetClueSequenceSnapshotIsACopy() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)
	_, err = s.w.gameSvc.SetClueSequence(s.ctx, game.ID, []string{"c-route"}, "user-gm")
	s.Require().NoError(err)

	// edit the library document after sequencing
	edited := s.w.library.clues["c-route"]
	edited.Title = "A completely different clue"
	edited.RequiredPhotos = 9
	s.w.library.clues["c-route"] = edited

	stored, err := s.w.games.GetGameByID(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("Find the fountain", stored.ClueSequence[0].Title)
	s.Equal(1, stored.ClueSequence[0].RequiredPhotos)
}

func (s *GameServiceTestSuite) TestSetClueSequenceRequiresGameMaster() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)
	_, err = s.w.gameSvc.JoinByCode(s.ctx, "ABC123", "user-player")
	s.Require().NoError(err)

	_, err = s.w.gameSvc.SetClueSequence(s.ctx, game.ID, []string{"c-route"}, "user-player")
	s.ErrorIs(err, auth.ErrUnauthorized)

	_, err = s.w.gameSvc.SetClueSequence(s.ctx, game.ID, []string{"c-route"}, "user-stranger")
	s.ErrorIs(err, auth.ErrUnauthorized)
}

func (s *GameServiceTestSuite) TestSetClueSequenceUnknownClue() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)

	_, err = s.w.gameSvc.SetClueSequence(s.ctx, game.ID, []string{"c-missing"}, "user-gm")
	s.ErrorIs(err, ErrValidation)
}

func (s *GameServiceTestSuite) TestStatusGraph() {
	game, _, _ := s.w.seedActiveGame(s.ctx, "user-gm", "user-player", "Red")

	// active -> completed is allowed
	err := s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusCompleted, "user-gm")
	s.Require().NoError(err)

	// no transitions out of completed
	err = s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusActive, "user-gm")
	s.ErrorIs(err, ErrConflict)

	// never back to setup
	err = s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusSetup, "user-gm")
	s.ErrorIs(err, ErrValidation)
}

func (s *GameServiceTestSuite) TestActivationRequirements() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)

	// no clues yet
	err = s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusActive, "user-gm")
	s.ErrorIs(err, ErrValidation)

	_, err = s.w.gameSvc.SetClueSequence(s.ctx, game.ID, []string{"c-route"}, "user-gm")
	s.Require().NoError(err)

	// no teams yet
	err = s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusActive, "user-gm")
	s.ErrorIs(err, ErrValidation)

	team, err := s.w.teamSvc.CreateTeam(s.ctx, game.ID, "Red", "user-gm")
	s.Require().NoError(err)

	// team exists but nobody is assigned
	err = s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusActive, "user-gm")
	s.ErrorIs(err, ErrValidation)

	member, err := s.w.gameSvc.JoinByCode(s.ctx, "ABC123", "user-player")
	s.Require().NoError(err)
	s.Require().NoError(s.w.teamSvc.AssignMember(s.ctx, member.ID, team.ID, "user-gm"))

	s.NoError(s.w.gameSvc.SetStatus(s.ctx, game.ID, models.GameStatusActive, "user-gm"))
}

func (s *GameServiceTestSuite) TestSetVictoryConfigUnknownGame() {
	cfg := &models.VictoryConfig{FirstMessage: "Champions!"}
	err := s.w.gameSvc.SetVictoryConfig(s.ctx, "no-such-game", cfg, "user-gm")
	s.ErrorIs(err, ErrNotFound)
}

func (s *GameServiceTestSuite) TestGetGameRequiresMembership() {
	game, err := s.w.gameSvc.CreateGame(s.ctx, "Hunt", "ABC123", "user-gm")
	s.Require().NoError(err)

	_, err = s.w.gameSvc.GetGame(s.ctx, game.ID, "user-stranger")
	s.ErrorIs(err, auth.ErrUnauthorized)

	got, err := s.w.gameSvc.GetGame(s.ctx, game.ID, "user-gm")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
}
