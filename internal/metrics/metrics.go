package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the betting pool
type Metrics struct {
	LinesCreated  prometheus.Counter
	LinesLocked   prometheus.Counter
	LinesResolved prometheus.Counter

	StakesPlaced    prometheus.Counter
	StakesSwitched  prometheus.Counter
	StakesWithdrawn prometheus.Counter

	UnitsPaidOut   prometheus.Counter
	HouseRemainder prometheus.Counter
}

// New creates the counters and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LinesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_lines_created_total",
			Help: "Number of betting lines opened",
		}),
		LinesLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_lines_locked_total",
			Help: "Number of betting lines locked",
		}),
		LinesResolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_lines_resolved_total",
			Help: "Number of betting lines resolved",
		}),
		StakesPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_stakes_placed_total",
			Help: "Number of stakes placed",
		}),
		StakesSwitched: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_stakes_switched_total",
			Help: "Number of stakes retired by a switch to another option",
		}),
		StakesWithdrawn: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_stakes_withdrawn_total",
			Help: "Number of stakes withdrawn before lock",
		}),
		UnitsPaidOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_units_paid_out_total",
			Help: "Units credited to winners by payouts",
		}),
		HouseRemainder: factory.NewCounter(prometheus.CounterOpts{
			Name: "betpool_house_remainder_total",
			Help: "Units retained by the house from payouts",
		}),
	}
}
