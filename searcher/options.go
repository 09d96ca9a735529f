package searcher

import (
	"time"

	"atropos/experiments/metrics"

	"golang.org/x/exp/rand"
)

type Option func(s *AlphaBeta)

// WithDepth sets the number of plies searched before falling back to rollouts.
func WithDepth(depth int) Option {
	return func(s *AlphaBeta) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithTrials sets the number of random playouts per leaf evaluation.
func WithTrials(trials int) Option {
	return func(s *AlphaBeta) {
		if trials > 0 {
			s.trials = trials
		}
	}
}

// WithGoroutines spreads the playouts of each evaluation over n goroutines.
func WithGoroutines(n int) Option {
	return func(s *AlphaBeta) {
		if n > 0 {
			s.goroutines = n
		}
	}
}

// WithSeed makes the rollouts reproducible. A zero seed means time-seeded.
func WithSeed(seed uint64) Option {
	return func(s *AlphaBeta) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithRand injects the generator the playout seeds are drawn from.
func WithRand(rng *rand.Rand) Option {
	return func(s *AlphaBeta) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithTerminalScore sets the magnitude of an immediate loss.
func WithTerminalScore(score int) Option {
	return func(s *AlphaBeta) {
		if score > 0 {
			s.terminal = score
		}
	}
}

// WithTimeLimit bounds each search; on expiry the best move so far is returned.
func WithTimeLimit(limit time.Duration) Option {
	return func(s *AlphaBeta) {
		if limit > 0 {
			s.timeLimit = limit
		}
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = metrics.NewCollector()
	}
}
