package memory

import (
	"context"
	"sync"

	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	members map[model.MemberID]*model.Member
	lines   map[model.LineID]*model.Line
	stakes  map[stakeKey]*model.Stake
}

type stakeKey struct {
	lineID   model.LineID
	memberID model.MemberID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		members: make(map[model.MemberID]*model.Member),
		lines:   make(map[model.LineID]*model.Line),
		stakes:  make(map[stakeKey]*model.Stake),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Values are copied on save and on read so callers never share a record
// with the store or with each other. The redis implementation gets the
// same behavior for free from its JSON round-trip.

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *member
	s.members[member.ID] = &c
	return nil
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	c := *member
	return &c, nil
}

func (s *Storage) ListMembers(ctx context.Context) ([]*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]*model.Member, 0, len(s.members))
	for _, member := range s.members {
		c := *member
		members = append(members, &c)
	}
	return members, nil
}

// Line operations

func (s *Storage) SaveLine(ctx context.Context, line *model.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *line
	s.lines[line.ID] = &c
	return nil
}

func (s *Storage) GetLine(ctx context.Context, id model.LineID) (*model.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	line, ok := s.lines[id]
	if !ok {
		return nil, model.ErrLineNotFound
	}
	c := *line
	return &c, nil
}

func (s *Storage) ListLines(ctx context.Context) ([]*model.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := make([]*model.Line, 0, len(s.lines))
	for _, line := range s.lines {
		c := *line
		lines = append(lines, &c)
	}
	return lines, nil
}

// Stake operations

func (s *Storage) SaveStake(ctx context.Context, stake *model.Stake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *stake
	s.stakes[stakeKey{stake.LineID, stake.MemberID}] = &c
	return nil
}

func (s *Storage) GetStake(ctx context.Context, lineID model.LineID, memberID model.MemberID) (*model.Stake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stake, ok := s.stakes[stakeKey{lineID, memberID}]
	if !ok {
		return nil, model.ErrStakeNotFound
	}
	c := *stake
	return &c, nil
}

func (s *Storage) DeleteStake(ctx context.Context, lineID model.LineID, memberID model.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stakes, stakeKey{lineID, memberID})
	return nil
}

func (s *Storage) GetStakesForLine(ctx context.Context, lineID model.LineID) ([]*model.Stake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stakes []*model.Stake
	for key, stake := range s.stakes {
		if key.lineID == lineID {
			c := *stake
			stakes = append(stakes, &c)
		}
	}
	return stakes, nil
}
