package searcher

import (
	"context"
	"math"
	"sync"

	"atropos/experiments/metrics"
	"atropos/game"
)

// Infinity bounds the alpha-beta window. Any reachable score, terminal ones
// included, is strictly inside (-Infinity, Infinity).
const Infinity = math.MaxInt

type Searcher interface {
	Search(ctx context.Context, board *game.Board, last game.Move, side int) (Result, error)
}

// Result of a search from the root position.
type Result struct {
	Move    game.Move // NoMove when the position is drawn
	Score   int
	Lost    bool // The best move still loses within the search depth
	Aborted bool // Search was cut short; Move is the best found so far
	Metric  metrics.SearchMetric
}

// pools hands out one board pool per board size.
type pools struct {
	mu     sync.Mutex
	bySize map[int]*game.Pool
}

func (p *pools) get(size int) *game.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bySize == nil {
		p.bySize = make(map[int]*game.Pool)
	}
	pool, ok := p.bySize[size]
	if !ok {
		pool = game.NewPool(size)
		p.bySize[size] = pool
	}
	return pool
}
