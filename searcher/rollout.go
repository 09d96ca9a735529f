package searcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"atropos/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Evaluator scores positions by random playouts.
type Evaluator struct {
	trials     int
	goroutines int
	mu         sync.Mutex // Guards rng
	rng        *rand.Rand
	pools      pools
}

// NewEvaluator returns an evaluator running trials playouts per call, spread
// over goroutines workers. Worker generators are seeded from rng, so a fixed
// rng and worker count reproduce the same scores. A nil rng is time-seeded.
func NewEvaluator(trials, goroutines int, rng *rand.Rand) *Evaluator {
	if trials <= 0 {
		panic("evaluator needs at least one trial")
	}
	if goroutines <= 0 {
		goroutines = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Evaluator{
		trials:     trials,
		goroutines: goroutines,
		rng:        rng,
	}
}

func (e *Evaluator) Trials() int {
	return e.trials
}

// Evaluate plays the position out at random from move, already applied to
// board, with side to play next. It returns the number of playouts, out of
// Trials, in which the positive side was the one left standing.
//
// board is only read and may be shared with other readers.
func (e *Evaluator) Evaluate(ctx context.Context, board *game.Board, move game.Move, side int) (int, error) {
	workers := min(e.goroutines, e.trials)
	seeds := e.seeds(workers)
	pool := e.pools.get(board.Size())

	var score atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[w]))
			sim := pool.Get(board)
			defer pool.Put(sim)

			wins := 0
			for trial := w; trial < e.trials; trial += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if trial != w {
					sim.CopyFrom(board)
				}
				if playout(sim, move, side, rng) > 0 {
					wins++
				}
			}
			score.Add(int64(wins))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(score.Load()), nil
}

func (e *Evaluator) seeds(n int) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = e.rng.Uint64()
	}
	return seeds
}

// playout plays uniformly random moves on board until someone loses or no
// move is left, and returns the side that would play next.
func playout(board *game.Board, last game.Move, side int, rng *rand.Rand) int {
	for last.IsZero() || !board.HasLost(last) {
		moves := board.AvailableMoves(last)
		if len(moves) == 0 {
			break
		}
		last = moves[rng.Intn(len(moves))]
		board.Apply(last)
		side = -side
	}
	return side
}
