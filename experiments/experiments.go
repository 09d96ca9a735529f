package experiments

import (
	"context"
	"fmt"

	"atropos/engine"
	"atropos/experiments/metrics"
	"atropos/meta"
	"atropos/searcher"
	"atropos/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Options struct {
	Size     int    // Board size
	NumGames int    // Per match up
	Seed     uint64 // Seeds every agent of the experiment
	BaseDir  string // Where results are written
}

func DefaultOptions() Options {
	return Options{
		Size:     meta.BOARD_SIZE,
		NumGames: 10,
		Seed:     1,
		BaseDir:  "experiments",
	}
}

var baseline = metrics.AgentConfig{ID: 0, Random: true}

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 1, Trials: 50, Goroutines: 1},
	{ID: 2, Depth: 2, Trials: 50, Goroutines: 1},
	{ID: 3, Depth: 3, Trials: 50, Goroutines: 1},
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 2, Trials: meta.MC_SIM, Goroutines: 1},
	{ID: 2, Depth: 2, Trials: meta.MC_SIM, Goroutines: 2},
	{ID: 3, Depth: 2, Trials: meta.MC_SIM, Goroutines: 4},
	{ID: 4, Depth: 2, Trials: meta.MC_SIM, Goroutines: 8},
}

// RunDepthExperiment pairs search agents of increasing depth against the
// random baseline.
func RunDepthExperiment(ctx context.Context, opts Options) (string, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}
	return Run(ctx, "depth", append(depthConfigs, baseline), matchUps, opts)
}

// RunParallelizationExperiment pits each rollout worker count against itself,
// for the same playing strength and similar game length.
func RunParallelizationExperiment(ctx context.Context, opts Options) (string, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return Run(ctx, "parallelization", parallelConfigs, matchUps, opts)
}

// Run plays opts.NumGames games per matchup, alternating the starting side, and
// writes the records under opts.BaseDir. It returns the results directory.
func Run(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) (string, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < opts.NumGames; i++ {
			e := engine.NewLocalEngine(opts.Size, createAgent(config1, rng), createAgent(config2, rng))
			if i%2 == 1 {
				e.StartingSide = -1
			}

			loser, gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with loser: %+d", mi+1, len(matchUps), i+1, loser)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(opts.BaseDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())

	return writer.Dir(), nil
}

func createAgent(config metrics.AgentConfig, rng *rand.Rand) agent.Agent {
	// Each agent gets its own generator so agents don't share state
	own := rand.New(rand.NewSource(rng.Uint64()))
	if config.Random {
		return agent.NewRandomAgent(own)
	}
	return agent.NewEvaluationAgent(createSearcher(config, own))
}

func createSearcher(config metrics.AgentConfig, rng *rand.Rand) *searcher.AlphaBeta {
	options := []searcher.Option{
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Trials > 0 {
		options = append(options, searcher.WithTrials(config.Trials))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.TimeLimit > 0 {
		options = append(options, searcher.WithTimeLimit(config.TimeLimit))
	}

	return searcher.NewAlphaBeta(options...)
}
