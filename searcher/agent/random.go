package agent

import (
	"context"

	"atropos/experiments/metrics"
	"atropos/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly among the moves
// that don't lose on the spot, or among all moves when every move loses.
func NewRandomAgent(rng *rand.Rand) Agent {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) FindMove(ctx context.Context, board *game.Board, last game.Move, side int) (game.Move, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	moves := board.AvailableMoves(last)
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, nil
	}

	safe := make([]game.Move, 0, len(moves))
	child := board.Clone()
	for _, m := range moves {
		child.CopyFrom(board)
		child.Apply(m)
		if !child.HasLost(m) {
			safe = append(safe, m)
		}
	}
	if len(safe) == 0 {
		safe = moves
	}
	return safe[a.rng.Intn(len(safe))], metrics.SearchMetric{}, nil
}
