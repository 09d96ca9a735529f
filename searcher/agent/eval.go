package agent

import (
	"context"

	"atropos/experiments/metrics"
	"atropos/game"
	"atropos/searcher"
)

type evaluationAgent struct {
	searcher searcher.Searcher
}

// NewEvaluationAgent returns an agent playing the searcher's best move.
func NewEvaluationAgent(s searcher.Searcher) Agent {
	return evaluationAgent{searcher: s}
}

func (a evaluationAgent) FindMove(ctx context.Context, board *game.Board, last game.Move, side int) (game.Move, metrics.SearchMetric, error) {
	result, err := a.searcher.Search(ctx, board, last, side)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	return result.Move, result.Metric, nil
}
