package stake

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/jcallaghan/betpool/internal/dependencies/mocks"
	"github.com/jcallaghan/betpool/internal/metrics"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/emoji"
	"github.com/jcallaghan/betpool/internal/services/ledger"
	"github.com/jcallaghan/betpool/internal/services/line"
	"github.com/jcallaghan/betpool/internal/services/payout"
	"github.com/jcallaghan/betpool/internal/storage/memory"
	"github.com/jcallaghan/betpool/internal/testutil"
)

type ReconcilerSuite struct {
	suite.Suite
	storage    *memory.Storage
	ledger     *ledger.Service
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *line.Controller
	reconciler *Reconciler
	ctx        context.Context
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	m := metrics.New(prometheus.NewRegistry())
	codec := emoji.New()
	locker := line.NewLocker()

	s.ledger = ledger.New(s.storage, s.clock, ledger.DefaultConfig(), logger)
	engine := payout.New(s.ledger, m, logger)
	s.controller = line.NewController(s.storage, codec, engine, locker, s.clock, s.random, m, logger)
	s.reconciler = NewReconciler(s.storage, s.ledger, codec, locker, s.clock, m, logger)
	s.ctx = context.Background()
}

// overUnderLine opens a line with symbols ⬆️ (Over) and ⬇️ (Under)
func (s *ReconcilerSuite) overUnderLine() *model.Line {
	s.random.QueueString("LINE0001")
	l, err := s.controller.Create(s.ctx, "Over or under 3 goals?", []string{"Over", "Under"}, "op-1")
	s.Require().NoError(err)
	return l
}

func (s *ReconcilerSuite) balance(id model.MemberID) int {
	member, err := s.ledger.GetMember(s.ctx, id)
	s.Require().NoError(err)
	return member.Balance
}

// OnSignalAdded tests

func (s *ReconcilerSuite) TestFirstSignalCreatesMemberAndPlacesStake() {
	l := s.overUnderLine()

	stake, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)
	s.Require().NotNil(stake)

	s.Equal("Over", stake.Option)
	s.Equal(1, stake.Amount)
	s.Equal(model.MemberID("m1"), stake.MemberID)

	member, err := s.ledger.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(19, member.Balance)
	s.Equal(1, member.TotalStakes)
}

func (s *ReconcilerSuite) TestStakeIsPersisted() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	stored, err := s.storage.GetStake(s.ctx, l.ID, "m1")
	s.Require().NoError(err)
	s.Equal("Over", stored.Option)
}

func (s *ReconcilerSuite) TestUnrecognizedSymbolIsIgnored() {
	l := s.overUnderLine()

	stake, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "🎉")
	s.Require().NoError(err)
	s.Nil(stake)

	// No member is created for noise signals
	_, err = s.ledger.GetMember(s.ctx, "m1")
	s.ErrorIs(err, model.ErrMemberNotFound)
}

func (s *ReconcilerSuite) TestDuplicateSameOptionSignal() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.ErrorIs(err, model.ErrDuplicateStake)

	// Balance was debited exactly once
	s.Equal(19, s.balance("m1"))
}

func (s *ReconcilerSuite) TestSwitchingOptionsNetsToZero() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	stake, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬇️")
	s.Require().NoError(err)
	s.Require().NotNil(stake)
	s.Equal("Under", stake.Option)

	// Old stake refunded, new stake debited: one unit outstanding in total
	member, err := s.ledger.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(19, member.Balance)
	s.Equal(1, member.TotalStakes)

	stored, err := s.storage.GetStake(s.ctx, l.ID, "m1")
	s.Require().NoError(err)
	s.Equal("Under", stored.Option)
}

func (s *ReconcilerSuite) TestSignalOnLockedLineFails() {
	l := s.overUnderLine()
	_, err := s.controller.Lock(s.ctx, l.ID)
	s.Require().NoError(err)

	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.ErrorIs(err, model.ErrNotOpen)
}

func (s *ReconcilerSuite) TestSignalOnResolvedLineFails() {
	l := s.overUnderLine()
	_, _, err := s.controller.Resolve(s.ctx, l.ID, "Over")
	s.Require().NoError(err)

	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.ErrorIs(err, model.ErrNotOpen)
}

func (s *ReconcilerSuite) TestSignalOnUnknownLineFails() {
	_, err := s.reconciler.OnSignalAdded(s.ctx, "MISSING1", "m1", "Alice", "⬆️")
	s.ErrorIs(err, model.ErrLineNotFound)
}

func (s *ReconcilerSuite) TestInsufficientBalanceRejectsStake() {
	l := s.overUnderLine()

	_, err := s.ledger.GetOrCreateMember(s.ctx, "m1", "Alice")
	s.Require().NoError(err)
	_, err = s.ledger.Debit(s.ctx, "m1", 20)
	s.Require().NoError(err)

	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.ErrorIs(err, model.ErrInsufficientBalance)

	_, err = s.storage.GetStake(s.ctx, l.ID, "m1")
	s.ErrorIs(err, model.ErrStakeNotFound)
}

func (s *ReconcilerSuite) TestBrokeMemberCannotSwitch() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	// Drain the rest of the balance; the outstanding stake stays outstanding
	_, err = s.ledger.Debit(s.ctx, "m1", 19)
	s.Require().NoError(err)

	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬇️")
	s.ErrorIs(err, model.ErrInsufficientBalance)

	stored, err := s.storage.GetStake(s.ctx, l.ID, "m1")
	s.Require().NoError(err)
	s.Equal("Over", stored.Option)
}

// OnSignalRemoved tests

func (s *ReconcilerSuite) TestWithdrawRefundsStake() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	stake, err := s.reconciler.OnSignalRemoved(s.ctx, l.ID, "m1", "⬆️")
	s.Require().NoError(err)
	s.Require().NotNil(stake)
	s.Equal("Over", stake.Option)

	member, err := s.ledger.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(20, member.Balance)
	s.Equal(0, member.TotalStakes)

	_, err = s.storage.GetStake(s.ctx, l.ID, "m1")
	s.ErrorIs(err, model.ErrStakeNotFound)
}

func (s *ReconcilerSuite) TestRemoveNonBindingSymbolIsIgnored() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	// Removing the symbol for an option the member never staked
	stake, err := s.reconciler.OnSignalRemoved(s.ctx, l.ID, "m1", "⬇️")
	s.Require().NoError(err)
	s.Nil(stake)

	s.Equal(19, s.balance("m1"))
}

func (s *ReconcilerSuite) TestRemoveWithNoStakeIsIgnored() {
	l := s.overUnderLine()

	stake, err := s.reconciler.OnSignalRemoved(s.ctx, l.ID, "m1", "⬆️")
	s.Require().NoError(err)
	s.Nil(stake)
}

func (s *ReconcilerSuite) TestRemoveUnrecognizedSymbolIsIgnored() {
	l := s.overUnderLine()

	stake, err := s.reconciler.OnSignalRemoved(s.ctx, l.ID, "m1", "🎉")
	s.Require().NoError(err)
	s.Nil(stake)
}

func (s *ReconcilerSuite) TestRemoveOnLockedLineIsIgnored() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)

	_, err = s.controller.Lock(s.ctx, l.ID)
	s.Require().NoError(err)

	// Stakes are frozen: the removal does not refund
	stake, err := s.reconciler.OnSignalRemoved(s.ctx, l.ID, "m1", "⬆️")
	s.Require().NoError(err)
	s.Nil(stake)

	s.Equal(19, s.balance("m1"))
	_, err = s.storage.GetStake(s.ctx, l.ID, "m1")
	s.Require().NoError(err)
}

// Concurrency tests

func (s *ReconcilerSuite) TestConcurrentSignalsPlaceExactlyOneStake() {
	l := s.overUnderLine()

	start := make(chan struct{})
	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
		}(i)
	}
	close(start)
	wg.Wait()

	var placed, duplicate int
	for _, err := range errs {
		switch {
		case err == nil:
			placed++
		case s.ErrorIs(err, model.ErrDuplicateStake):
			duplicate++
		}
	}
	s.Equal(1, placed)
	s.Equal(7, duplicate)

	member, err := s.ledger.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(19, member.Balance)
	s.Equal(1, member.TotalStakes)
}

func (s *ReconcilerSuite) TestConcurrentStakesOnTwoLinesNeverOverdraw() {
	l1 := s.overUnderLine()
	s.random.QueueString("LINE0002")
	l2, err := s.controller.Create(s.ctx, "Red card shown?", []string{"Yes", "No"}, "op-1")
	s.Require().NoError(err)

	_, err = s.ledger.GetOrCreateMember(s.ctx, "m1", "Alice")
	s.Require().NoError(err)
	_, err = s.ledger.Debit(s.ctx, "m1", 19)
	s.Require().NoError(err)

	// Balance is 1: staking both lines at once may place exactly one unit
	start := make(chan struct{})
	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		_, errs[0] = s.reconciler.OnSignalAdded(s.ctx, l1.ID, "m1", "Alice", "⬆️")
	}()
	go func() {
		defer wg.Done()
		<-start
		_, errs[1] = s.reconciler.OnSignalAdded(s.ctx, l2.ID, "m1", "Alice", l2.Symbols[0])
	}()
	close(start)
	wg.Wait()

	var placed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			placed++
		case s.ErrorIs(err, model.ErrInsufficientBalance):
			rejected++
		}
	}
	s.Equal(1, placed)
	s.Equal(1, rejected)

	member, err := s.ledger.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(0, member.Balance)
	s.Equal(1, member.TotalStakes)
}

// End-to-end lifecycle

func (s *ReconcilerSuite) TestFullLifecycleConservesUnits() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)
	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m2", "Bob", "⬆️")
	s.Require().NoError(err)
	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m3", "Carol", "⬇️")
	s.Require().NoError(err)

	_, err = s.controller.Lock(s.ctx, l.ID)
	s.Require().NoError(err)

	_, result, err := s.controller.Resolve(s.ctx, l.ID, "Over")
	s.Require().NoError(err)

	// Pot of 1 split two ways: nobody is paid, the house keeps the unit
	s.Equal(1, result.Pot)
	s.Equal(0, result.PerWinner)
	s.Equal(1, result.Remainder)

	s.Equal(19, s.balance("m1"))
	s.Equal(19, s.balance("m2"))
	s.Equal(19, s.balance("m3"))
}

func (s *ReconcilerSuite) TestFullLifecycleSingleWinnerTakesPot() {
	l := s.overUnderLine()

	_, err := s.reconciler.OnSignalAdded(s.ctx, l.ID, "m1", "Alice", "⬆️")
	s.Require().NoError(err)
	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m2", "Bob", "⬇️")
	s.Require().NoError(err)
	_, err = s.reconciler.OnSignalAdded(s.ctx, l.ID, "m3", "Carol", "⬇️")
	s.Require().NoError(err)

	_, result, err := s.controller.Resolve(s.ctx, l.ID, "Over")
	s.Require().NoError(err)

	s.Equal(2, result.Pot)
	s.Equal(2, result.PerWinner)
	s.Equal(0, result.Remainder)

	s.Equal(21, s.balance("m1"))
	s.Equal(19, s.balance("m2"))
	s.Equal(19, s.balance("m3"))

	winner, err := s.ledger.GetMember(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(2, winner.TotalWinnings)
}
