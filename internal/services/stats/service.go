package stats

import (
	"context"
	"sort"

	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/storage"
)

// DefaultLeaderboardLimit caps the leaderboard when no limit is given
const DefaultLeaderboardLimit = 10

// Service provides member stats and leaderboard reads
type Service struct {
	storage storage.Storage
}

// New creates a new stats service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// MemberStats retrieves a member's balance and cumulative stats
func (s *Service) MemberStats(ctx context.Context, id model.MemberID) (*model.Member, error) {
	return s.storage.GetMember(ctx, id)
}

// Leaderboard returns up to limit members ordered by balance, with
// cumulative winnings then ID as tiebreakers
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*model.Member, error) {
	members, err := s.storage.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].Balance != members[j].Balance {
			return members[i].Balance > members[j].Balance
		}
		if members[i].TotalWinnings != members[j].TotalWinnings {
			return members[i].TotalWinnings > members[j].TotalWinnings
		}
		return members[i].ID < members[j].ID
	})

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if len(members) > limit {
		members = members[:limit]
	}
	return members, nil
}
