package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) saveMember(id string, balance, winnings int) {
	err := s.storage.SaveMember(s.ctx, &model.Member{
		ID:            model.MemberID(id),
		DisplayName:   id,
		Balance:       balance,
		TotalWinnings: winnings,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestMemberStats() {
	s.saveMember("m1", 25, 7)

	member, err := s.service.MemberStats(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(25, member.Balance)
	s.Equal(7, member.TotalWinnings)
}

func (s *ServiceSuite) TestMemberStatsNotFound() {
	_, err := s.service.MemberStats(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *ServiceSuite) TestLeaderboardOrdersByBalance() {
	s.saveMember("m1", 15, 0)
	s.saveMember("m2", 30, 0)
	s.saveMember("m3", 20, 0)

	members, err := s.service.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal(model.MemberID("m2"), members[0].ID)
	s.Equal(model.MemberID("m3"), members[1].ID)
	s.Equal(model.MemberID("m1"), members[2].ID)
}

func (s *ServiceSuite) TestLeaderboardBreaksTiesByWinningsThenID() {
	s.saveMember("zed", 20, 5)
	s.saveMember("ann", 20, 5)
	s.saveMember("bob", 20, 9)

	members, err := s.service.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal(model.MemberID("bob"), members[0].ID)
	s.Equal(model.MemberID("ann"), members[1].ID)
	s.Equal(model.MemberID("zed"), members[2].ID)
}

func (s *ServiceSuite) TestLeaderboardAppliesLimit() {
	for i := 0; i < 5; i++ {
		s.saveMember(string(rune('a'+i)), 10+i, 0)
	}

	members, err := s.service.Leaderboard(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(members, 2)
}

func (s *ServiceSuite) TestLeaderboardDefaultLimit() {
	for i := 0; i < 15; i++ {
		s.saveMember(string(rune('a'+i)), 10+i, 0)
	}

	members, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(members, DefaultLeaderboardLimit)
}

func (s *ServiceSuite) TestLeaderboardEmpty() {
	members, err := s.service.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(members)
}
