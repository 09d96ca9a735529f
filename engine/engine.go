package engine

import (
	"context"

	"atropos/experiments/metrics"
)

type Engine interface {
	// Run plays a game till a side loses or the board fills up
	Run(ctx context.Context) (loser int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
