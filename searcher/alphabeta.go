package searcher

import (
	"context"
	"errors"
	"time"

	"atropos/experiments/metrics"
	"atropos/game"
	"atropos/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// AlphaBeta is a fixed-depth minimax search with alpha-beta pruning that scores
// its leaves with random playouts. Scores are from the positive side's point of
// view: side +1 maximises, side -1 minimises.
//
// An AlphaBeta runs one search at a time.
type AlphaBeta struct {
	depth      int
	trials     int
	goroutines int
	terminal   int
	timeLimit  time.Duration
	rng        *rand.Rand
	evaluator  *Evaluator
	metrics    metrics.Collector
	pools      pools
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		depth:      meta.DEPTH,
		trials:     meta.MC_SIM,
		goroutines: meta.GO_ROUTINES,
		terminal:   meta.TERMINAL_SCORE,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	// A loss has to outweigh any playout score
	if s.terminal <= s.trials {
		log.Warn().Msgf("terminal score %d does not exceed %d trials, raising it to %d", s.terminal, s.trials, s.trials+1)
		s.terminal = s.trials + 1
	}
	s.evaluator = NewEvaluator(s.trials, s.goroutines, s.rng)
	return s
}

func (s *AlphaBeta) Depth() int {
	return s.depth
}

func (s *AlphaBeta) TerminalScore() int {
	return s.terminal
}

// Search picks the best move for side after last has been played on board.
// board is not modified.
func (s *AlphaBeta) Search(ctx context.Context, board *game.Board, last game.Move, side int) (Result, error) {
	if side != 1 && side != -1 {
		panic("side must be +1 or -1")
	}
	if s.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeLimit)
		defer cancel()
	}

	s.metrics.Start(s.depth, s.trials, s.goroutines)
	log.Debug().Msgf("searching %d plies with %d trials per leaf for side %+d after %v", s.depth, s.trials, side, last)

	pool := s.pools.get(board.Size())
	score, move, err := s.alphabeta(ctx, pool, board, last, side, s.depth, -Infinity, Infinity)

	result := Result{Move: move, Score: score}
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		s.metrics.SetAborted()
		result.Aborted = true
		if move.IsZero() {
			// No root move finished, settle for the first legal one
			moves := board.AvailableMoves(last)
			if len(moves) > 0 {
				result.Move = moves[0]
			}
			result.Score = 0
		}
		log.Warn().Err(err).Msgf("search aborted, returning %v", result.Move)
	}
	result.Lost = !result.Move.IsZero() && result.Score == -s.terminal*side
	result.Metric = s.metrics.Complete()

	log.Debug().Msgf("best move %v scores %d", result.Move, result.Score)
	return result, nil
}

// alphabeta returns the value of the position for side to play after last,
// and the move achieving it. Ties keep the first move found, except that a move
// losing on the spot gives way to an equally scored one that doesn't. On
// cancellation it returns the context error with the best move of the
// completed branches.
func (s *AlphaBeta) alphabeta(ctx context.Context, pool *game.Pool, board *game.Board, last game.Move, side, depth, alpha, beta int) (int, game.Move, error) {
	if err := ctx.Err(); err != nil {
		return 0, game.NoMove, err
	}
	s.metrics.AddNode()

	moves := board.AvailableMoves(last)
	if len(moves) == 0 { // Drawn
		return 0, game.NoMove, nil
	}

	best := game.NoMove
	bestLost := false
	for _, move := range moves {
		child := pool.Get(board)
		child.Apply(move)
		lost := child.HasLost(move)
		score, err := s.branch(ctx, pool, child, move, side, depth, alpha, beta, lost)
		pool.Put(child)
		if err != nil {
			return bound(side, alpha, beta), best, err
		}

		// A loss within the horizon scores the same as a loss on the spot
		sparesLoss := bestLost && !lost && score == bound(side, alpha, beta)
		if side > 0 {
			if score > alpha || sparesLoss {
				alpha, best, bestLost = score, move, lost
			}
		} else {
			if score < beta || sparesLoss {
				beta, best, bestLost = score, move, lost
			}
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}
	return bound(side, alpha, beta), best, nil
}

// branch scores move, just played by side on child. lost tells whether move
// lost on the spot.
func (s *AlphaBeta) branch(ctx context.Context, pool *game.Pool, child *game.Board, move game.Move, side, depth, alpha, beta int, lost bool) (int, error) {
	if lost {
		return -s.terminal * side, nil
	}
	if depth <= 1 {
		score, err := s.evaluator.Evaluate(ctx, child, move, -side)
		if err == nil {
			s.metrics.AddRollouts(s.trials)
		}
		return score, err
	}
	score, _, err := s.alphabeta(ctx, pool, child, move, -side, depth-1, alpha, beta)
	return score, err
}

func bound(side, alpha, beta int) int {
	if side > 0 {
		return alpha
	}
	return beta
}
