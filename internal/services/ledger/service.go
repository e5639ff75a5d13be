package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jcallaghan/betpool/internal/dependencies/clock"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/storage"
)

// Config holds the economy constants
type Config struct {
	// StartingBalance is granted to members on first interaction
	StartingBalance int
	// StakeUnit is the fixed size of a single stake
	StakeUnit int
}

// DefaultConfig returns the default economy settings
func DefaultConfig() Config {
	return Config{
		StartingBalance: 20,
		StakeUnit:       1,
	}
}

// Service is the only component allowed to mutate member balances and
// stats. Every mutation runs under the member's own mutex: per-line locks
// do not help when the same member acts on two lines at once.
type Service struct {
	storage storage.Storage
	locks   *memberLocker
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new ledger service
func New(storage storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		locks:   newMemberLocker(),
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// StakeUnit returns the configured unit stake size
func (s *Service) StakeUnit() int {
	return s.cfg.StakeUnit
}

// GetMember retrieves a member by ID
func (s *Service) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	return s.storage.GetMember(ctx, id)
}

// GetOrCreateMember retrieves a member, creating them with the starting
// balance on first interaction
func (s *Service) GetOrCreateMember(ctx context.Context, id model.MemberID, displayName string) (*model.Member, error) {
	release := s.locks.acquire(id)
	defer release()

	member, err := s.storage.GetMember(ctx, id)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, model.ErrMemberNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	member = &model.Member{
		ID:          id,
		DisplayName: displayName,
		Balance:     s.cfg.StartingBalance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member created",
		slog.String("member_id", string(id)),
		slog.Int("starting_balance", s.cfg.StartingBalance),
	)

	return member, nil
}

// Debit removes amount units from the member's balance. Fails with
// ErrInsufficientBalance rather than letting the balance go negative.
func (s *Service) Debit(ctx context.Context, id model.MemberID, amount int) (*model.Member, error) {
	release := s.locks.acquire(id)
	defer release()

	member, err := s.storage.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if member.Balance < amount {
		return nil, model.ErrInsufficientBalance
	}

	member.Balance -= amount
	member.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Credit adds amount units to the member's balance
func (s *Service) Credit(ctx context.Context, id model.MemberID, amount int) (*model.Member, error) {
	release := s.locks.acquire(id)
	defer release()

	member, err := s.storage.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Balance += amount
	member.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// AdjustStat applies delta to one of the closed set of member stat fields.
// Unknown fields are rejected rather than interpolated.
func (s *Service) AdjustStat(ctx context.Context, id model.MemberID, field model.StatField, delta int) (*model.Member, error) {
	release := s.locks.acquire(id)
	defer release()

	member, err := s.storage.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	switch field {
	case model.StatStakeCount:
		member.TotalStakes += delta
		if member.TotalStakes < 0 {
			member.TotalStakes = 0
		}
	case model.StatWinnings:
		member.TotalWinnings += delta
	default:
		return nil, model.ErrUnknownStatField
	}

	member.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
