package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jcallaghan/betpool/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Member tests

func (s *StorageSuite) TestSaveAndGetMember() {
	member := &model.Member{ID: "m1", DisplayName: "Alice", Balance: 20}

	err := s.storage.SaveMember(s.ctx, member)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(member.DisplayName, retrieved.DisplayName)
	s.Equal(20, retrieved.Balance)
}

func (s *StorageSuite) TestMembersAreCopiedOnSaveAndGet() {
	member := &model.Member{ID: "m1", Balance: 20}
	s.Require().NoError(s.storage.SaveMember(s.ctx, member))

	// Mutating the caller's record or a retrieved one must not touch the
	// stored value
	member.Balance = 0
	retrieved, err := s.storage.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(20, retrieved.Balance)

	retrieved.Balance = 5
	again, err := s.storage.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(20, again.Balance)
}

func (s *StorageSuite) TestGetMemberNotFound() {
	_, err := s.storage.GetMember(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *StorageSuite) TestListMembers() {
	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "m1"})
	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "m2"})

	members, err := s.storage.ListMembers(s.ctx)
	s.Require().NoError(err)
	s.Len(members, 2)
}

// Line tests

func (s *StorageSuite) TestSaveAndGetLine() {
	line := &model.Line{
		ID:       "LINE0001",
		Question: "Yes or no?",
		Options:  []string{"Yes", "No"},
		Symbols:  []string{"✅", "❌"},
		Status:   model.LineStatusOpen,
	}

	err := s.storage.SaveLine(s.ctx, line)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLine(s.ctx, "LINE0001")
	s.Require().NoError(err)
	s.Equal(line.Question, retrieved.Question)
	s.Equal(line.Symbols, retrieved.Symbols)
}

func (s *StorageSuite) TestGetLineNotFound() {
	_, err := s.storage.GetLine(s.ctx, "MISSING1")
	s.ErrorIs(err, model.ErrLineNotFound)
}

func (s *StorageSuite) TestListLines() {
	_ = s.storage.SaveLine(s.ctx, &model.Line{ID: "LINE0001"})
	_ = s.storage.SaveLine(s.ctx, &model.Line{ID: "LINE0002"})

	lines, err := s.storage.ListLines(s.ctx)
	s.Require().NoError(err)
	s.Len(lines, 2)
}

// Stake tests

func (s *StorageSuite) TestSaveAndGetStake() {
	stake := &model.Stake{ID: "st1", MemberID: "m1", LineID: "LINE0001", Option: "Yes", Amount: 1}

	err := s.storage.SaveStake(s.ctx, stake)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetStake(s.ctx, "LINE0001", "m1")
	s.Require().NoError(err)
	s.Equal("Yes", retrieved.Option)
}

func (s *StorageSuite) TestGetStakeNotFound() {
	_, err := s.storage.GetStake(s.ctx, "LINE0001", "m1")
	s.ErrorIs(err, model.ErrStakeNotFound)
}

func (s *StorageSuite) TestSaveStakeOverwritesSameMemberAndLine() {
	_ = s.storage.SaveStake(s.ctx, &model.Stake{ID: "st1", MemberID: "m1", LineID: "LINE0001", Option: "Yes", Amount: 1})
	_ = s.storage.SaveStake(s.ctx, &model.Stake{ID: "st2", MemberID: "m1", LineID: "LINE0001", Option: "No", Amount: 1})

	stakes, err := s.storage.GetStakesForLine(s.ctx, "LINE0001")
	s.Require().NoError(err)
	s.Require().Len(stakes, 1)
	s.Equal("No", stakes[0].Option)
}

func (s *StorageSuite) TestDeleteStake() {
	_ = s.storage.SaveStake(s.ctx, &model.Stake{ID: "st1", MemberID: "m1", LineID: "LINE0001", Option: "Yes", Amount: 1})

	err := s.storage.DeleteStake(s.ctx, "LINE0001", "m1")
	s.Require().NoError(err)

	_, err = s.storage.GetStake(s.ctx, "LINE0001", "m1")
	s.ErrorIs(err, model.ErrStakeNotFound)
}

func (s *StorageSuite) TestDeleteStakeMissingIsNoop() {
	err := s.storage.DeleteStake(s.ctx, "LINE0001", "m1")
	s.NoError(err)
}

func (s *StorageSuite) TestGetStakesForLineFiltersOtherLines() {
	_ = s.storage.SaveStake(s.ctx, &model.Stake{ID: "st1", MemberID: "m1", LineID: "LINE0001", Option: "Yes", Amount: 1})
	_ = s.storage.SaveStake(s.ctx, &model.Stake{ID: "st2", MemberID: "m1", LineID: "LINE0002", Option: "No", Amount: 1})

	stakes, err := s.storage.GetStakesForLine(s.ctx, "LINE0001")
	s.Require().NoError(err)
	s.Require().Len(stakes, 1)
	s.Equal(model.LineID("LINE0001"), stakes[0].LineID)
}
