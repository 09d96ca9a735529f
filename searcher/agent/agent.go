package agent

import (
	"context"

	"atropos/experiments/metrics"
	"atropos/game"
)

type Agent interface {
	// FindMove returns the move to play for side after last, and performance metrics (if collected) from the search
	FindMove(ctx context.Context, board *game.Board, last game.Move, side int) (game.Move, metrics.SearchMetric, error)
}
