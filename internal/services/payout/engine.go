package payout

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jcallaghan/betpool/internal/metrics"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/ledger"
)

// Engine computes and applies the redistribution for resolved lines.
// Compute is a pure function of its inputs; Apply delegates every balance
// mutation to the ledger and must run at most once per line, which the
// line controller guarantees by rejecting a second resolve.
type Engine struct {
	ledger  *ledger.Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a new payout engine
func New(ledger *ledger.Service, m *metrics.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		ledger:  ledger,
		metrics: m,
		logger:  logger,
	}
}

// Compute partitions stakes into winners and losers and splits the pot.
// The pot is the sum of losing stake amounts; each winner receives
// floor(pot / winners) and the integer remainder stays with the house, so
// sum(payouts) + remainder == pot always holds.
func (e *Engine) Compute(line *model.Line, stakes []*model.Stake, winningOption string) *model.PayoutResult {
	result := &model.PayoutResult{
		LineID:        line.ID,
		WinningOption: winningOption,
		Payouts:       []model.Payout{},
	}

	var winners []model.MemberID
	for _, stake := range stakes {
		if stake.Option == winningOption {
			winners = append(winners, stake.MemberID)
		} else {
			result.Losers = append(result.Losers, stake.MemberID)
			result.Pot += stake.Amount
		}
	}

	// Stable ordering for deterministic output
	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })
	sort.Slice(result.Losers, func(i, j int) bool { return result.Losers[i] < result.Losers[j] })

	switch {
	case len(winners) == 0:
		// Nobody backed the winning option; the house keeps the pot
		result.Remainder = result.Pot
		result.Summary = fmt.Sprintf("No winners: the house keeps the pot of %d.", result.Pot)
	case result.Pot == 0:
		// No losing stakes to redistribute
		for _, id := range winners {
			result.Payouts = append(result.Payouts, model.Payout{MemberID: id})
		}
		result.Summary = "No losers: there is no pot to split."
	default:
		result.PerWinner = result.Pot / len(winners)
		result.Remainder = result.Pot % len(winners)
		for _, id := range winners {
			result.Payouts = append(result.Payouts, model.Payout{MemberID: id, Amount: result.PerWinner})
		}
		result.Summary = fmt.Sprintf("Pot of %d split %d ways: %d each, %d to the house.",
			result.Pot, len(winners), result.PerWinner, result.Remainder)
	}

	return result
}

// Apply credits each winner's payout to their balance and cumulative
// winnings. Losing stakes were collected when they were placed, so losers
// need no further mutation here.
func (e *Engine) Apply(ctx context.Context, result *model.PayoutResult) error {
	for _, p := range result.Payouts {
		if p.Amount == 0 {
			continue
		}
		if _, err := e.ledger.Credit(ctx, p.MemberID, p.Amount); err != nil {
			return err
		}
		if _, err := e.ledger.AdjustStat(ctx, p.MemberID, model.StatWinnings, p.Amount); err != nil {
			return err
		}
		e.metrics.UnitsPaidOut.Add(float64(p.Amount))
	}

	e.metrics.HouseRemainder.Add(float64(result.Remainder))

	e.logger.Info("payout applied",
		slog.String("line_id", string(result.LineID)),
		slog.String("winning_option", result.WinningOption),
		slog.Int("pot", result.Pot),
		slog.Int("per_winner", result.PerWinner),
		slog.Int("remainder", result.Remainder),
		slog.Int("winner_count", len(result.Payouts)),
	)

	return nil
}
