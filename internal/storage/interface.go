package storage

import (
	"context"

	"github.com/jcallaghan/betpool/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Member operations
	SaveMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, id model.MemberID) (*model.Member, error)
	ListMembers(ctx context.Context) ([]*model.Member, error)

	// Line operations
	SaveLine(ctx context.Context, line *model.Line) error
	GetLine(ctx context.Context, id model.LineID) (*model.Line, error)
	ListLines(ctx context.Context) ([]*model.Line, error)

	// Stake operations
	SaveStake(ctx context.Context, stake *model.Stake) error
	GetStake(ctx context.Context, lineID model.LineID, memberID model.MemberID) (*model.Stake, error)
	DeleteStake(ctx context.Context, lineID model.LineID, memberID model.MemberID) error
	GetStakesForLine(ctx context.Context, lineID model.LineID) ([]*model.Stake, error)
}
