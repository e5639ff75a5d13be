package stake

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jcallaghan/betpool/internal/dependencies/clock"
	"github.com/jcallaghan/betpool/internal/metrics"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/emoji"
	"github.com/jcallaghan/betpool/internal/services/ledger"
	"github.com/jcallaghan/betpool/internal/services/line"
	"github.com/jcallaghan/betpool/internal/storage"
)

// Reconciler turns external signal add/remove events into at most one
// outstanding stake per (member, line). Signal streams are noisy: any
// symbol can be toggled on a rendered line, so only symbols that decode
// to an option are actionable and everything else is ignored silently.
type Reconciler struct {
	storage storage.Storage
	ledger  *ledger.Service
	codec   *emoji.Codec
	locker  *line.Locker
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewReconciler creates a new stake reconciler
func NewReconciler(
	storage storage.Storage,
	ledger *ledger.Service,
	codec *emoji.Codec,
	locker *line.Locker,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		storage: storage,
		ledger:  ledger,
		codec:   codec,
		locker:  locker,
		clock:   clk,
		metrics: m,
		logger:  logger,
	}
}

// OnSignalAdded handles a member adding a signal to a line's rendered
// artifact. The whole read-check-act sequence runs under the line's lock
// so two concurrent signals for the same member cannot double-stake or
// double-debit. Returns the placed stake, or nil if the symbol was not
// one of the line's symbols.
func (r *Reconciler) OnSignalAdded(ctx context.Context, lineID model.LineID, memberID model.MemberID, displayName, symbol string) (*model.Stake, error) {
	release := r.locker.Acquire(lineID)
	defer release()

	l, err := r.storage.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	idx, ok := r.codec.Decode(symbol, l.Symbols)
	if !ok {
		// Unrelated signal, expected noise
		return nil, nil
	}
	option := l.Options[idx]

	if !l.CanAcceptStake() {
		return nil, model.ErrNotOpen
	}

	member, err := r.ledger.GetOrCreateMember(ctx, memberID, displayName)
	if err != nil {
		return nil, err
	}

	unit := r.ledger.StakeUnit()
	if member.Balance < unit {
		return nil, model.ErrInsufficientBalance
	}

	existing, err := r.storage.GetStake(ctx, lineID, memberID)
	switch {
	case err == nil && existing.Option == option:
		// Redundant same-option signal
		return nil, model.ErrDuplicateStake
	case err == nil:
		// Changing the vote: retire the old stake before placing the new one
		if retireErr := r.retire(ctx, existing); retireErr != nil {
			return nil, retireErr
		}
		r.metrics.StakesSwitched.Inc()
	case !errors.Is(err, model.ErrStakeNotFound):
		return nil, err
	}

	if _, err := r.ledger.Debit(ctx, memberID, unit); err != nil {
		return nil, err
	}
	if _, err := r.ledger.AdjustStat(ctx, memberID, model.StatStakeCount, 1); err != nil {
		return nil, err
	}

	stake := &model.Stake{
		ID:        model.StakeID(uuid.NewString()),
		MemberID:  memberID,
		LineID:    lineID,
		Option:    option,
		Amount:    unit,
		CreatedAt: r.clock.Now(),
	}

	if err := r.storage.SaveStake(ctx, stake); err != nil {
		return nil, err
	}

	r.metrics.StakesPlaced.Inc()
	r.logger.Info("stake placed",
		slog.String("line_id", string(lineID)),
		slog.String("member_id", string(memberID)),
		slog.String("option", option),
	)

	return stake, nil
}

// OnSignalRemoved handles a member removing a signal. Withdrawals are
// honored only while the line is open and only when the removed symbol
// matches the member's outstanding stake; every other case is a silent
// no-op. Returns the retired stake, or nil if nothing was withdrawn.
func (r *Reconciler) OnSignalRemoved(ctx context.Context, lineID model.LineID, memberID model.MemberID, symbol string) (*model.Stake, error) {
	release := r.locker.Acquire(lineID)
	defer release()

	l, err := r.storage.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	idx, ok := r.codec.Decode(symbol, l.Symbols)
	if !ok {
		return nil, nil
	}

	if !l.CanAcceptStake() {
		// Stakes are frozen once the line is locked or resolved
		return nil, nil
	}

	stake, err := r.storage.GetStake(ctx, lineID, memberID)
	if err != nil {
		if errors.Is(err, model.ErrStakeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if stake.Option != l.Options[idx] {
		// The member removed a non-binding signal
		return nil, nil
	}

	if err := r.retire(ctx, stake); err != nil {
		return nil, err
	}

	r.metrics.StakesWithdrawn.Inc()
	r.logger.Info("stake withdrawn",
		slog.String("line_id", string(lineID)),
		slog.String("member_id", string(memberID)),
		slog.String("option", stake.Option),
	)

	return stake, nil
}

// retire deletes a stake and refunds its amount
func (r *Reconciler) retire(ctx context.Context, stake *model.Stake) error {
	if err := r.storage.DeleteStake(ctx, stake.LineID, stake.MemberID); err != nil {
		return err
	}
	if _, err := r.ledger.Credit(ctx, stake.MemberID, stake.Amount); err != nil {
		return err
	}
	if _, err := r.ledger.AdjustStat(ctx, stake.MemberID, model.StatStakeCount, -1); err != nil {
		return err
	}
	return nil
}
