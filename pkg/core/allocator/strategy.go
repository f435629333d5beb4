package allocator

import (
	"fmt"

	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// Strategy keys
const (
	StrategyContribution        = "contribution"
	StrategyLimitedAvailability = "limited-availability"
	StrategyFirstFit            = "first-fit"
	StrategySpeedup             = "speedup"
)

// DefaultSpeedupCap is the number of top speedup players considered by the speedup strategy
const DefaultSpeedupCap = 48

// DefaultStrategies returns the four strategies run for every event, in output column order.
//
//   - contribution: least flexible first, higher contribution breaks ties
//   - limited-availability: least flexible first, input order breaks ties
//   - first-fit: input order, only slot scarcity drives the assignment
//   - speedup: top speedupCap players by speedup, then least flexible first with speedup breaking ties
func DefaultStrategies(contributionLabel string, speedupCap int) []Strategy {
	if speedupCap <= 0 {
		speedupCap = DefaultSpeedupCap
	}
	if contributionLabel == "" {
		contributionLabel = "contribution"
	}

	return []Strategy{
		{
			Key:               StrategyContribution,
			Title:             fmt.Sprintf("Schedule based on %s", contributionLabel),
			RankByFlexibility: true,
			Secondary:         model.MetricContribution,
			UnassignedReason:  ReasonScarcityRank,
		},
		{
			Key:               StrategyLimitedAvailability,
			Title:             "Schedule based on limited availability",
			RankByFlexibility: true,
			UnassignedReason:  ReasonLimitedAvailability,
		},
		{
			Key:              StrategyFirstFit,
			Title:            "Schedule based on hard-to-fill time slots",
			UnassignedReason: ReasonNoSlotMatch,
		},
		{
			Key:               StrategySpeedup,
			Title:             "Schedule based on total speedups",
			RankByFlexibility: true,
			Secondary:         model.MetricSpeedup,
			PoolCap:           speedupCap,
			UnassignedReason:  ReasonSpeedupCapExcluded,
		},
	}
}

// WithRecomputeScarcity returns a copy of the strategies with scarcity recomputation toggled
func WithRecomputeScarcity(strategies []Strategy, recompute bool) []Strategy {
	result := make([]Strategy, len(strategies))
	for i, strategy := range strategies {
		strategy.RecomputeScarcity = recompute
		result[i] = strategy
	}
	return result
}
