package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"atropos/communication"
	"atropos/config"
	"atropos/experiments"
	"atropos/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errUnknownExperiment = errors.New("unknown experiment")

// cli holds the command line flags. Flags left unset don't touch the config.
type cli struct {
	fs         *flag.FlagSet
	configPath *string
	depth      *int
	trials     *int
	goroutines *int
	seed       *uint64
	timeout    *time.Duration
	asJSON     *bool
	level      *string
	saveConfig *bool
	selfPlay   *string
	games      *int
	size       *int
	out        *string
}

func newCLI(name string, output io.Writer) *cli {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	c := &cli{
		fs:         fs,
		configPath: fs.String("config", "", "Config file, defaults to the XDG config atropos/config.json"),
		depth:      fs.Int("depth", 0, "Search depth in plies"),
		trials:     fs.Int("trials", 0, "Random playouts per leaf evaluation"),
		goroutines: fs.Int("goroutines", 0, "Number of goroutines sharing the playouts of one evaluation"),
		seed:       fs.Uint64("seed", 0, "Random seed, 0 seeds from the clock"),
		timeout:    fs.Duration("timeout", 0, "Time limit per search, 0 for none"),
		asJSON:     fs.Bool("json", false, "Print the result as JSON"),
		level:      fs.String("log", "", "Log level"),
		saveConfig: fs.Bool("save-config", false, "Write the effective config to the XDG config file"),
		selfPlay:   fs.String("selfplay", "", "Run a self-play experiment instead: depth or parallelization"),
		games:      fs.Int("games", 0, "Games per matchup in self-play"),
		size:       fs.Int("size", 0, "Board size in self-play"),
		out:        fs.String("out", "", "Output directory of self-play records"),
	}
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] '[13][302]...[121212]LastPlay:null'\n", name)
		fs.PrintDefaults()
	}
	return c
}

func (c *cli) parse(args []string) error {
	return c.fs.Parse(args)
}

// input joins the positional arguments, so a position split by the shell still parses.
func (c *cli) input() string {
	return strings.Join(c.fs.Args(), "")
}

// override copies the explicitly set flags over cfg.
func (c *cli) override(cfg *config.Config) {
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			cfg.Search.Depth = *c.depth
		case "trials":
			cfg.Search.Trials = *c.trials
		case "goroutines":
			cfg.Search.Goroutines = *c.goroutines
		case "seed":
			cfg.Search.Seed = *c.seed
		case "timeout":
			cfg.Search.TimeLimit = config.Duration(*c.timeout)
		case "log":
			cfg.LogLevel = *c.level
		case "games":
			cfg.SelfPlay.NumGames = *c.games
		case "size":
			cfg.SelfPlay.BoardSize = *c.size
		case "out":
			cfg.SelfPlay.OutputDir = *c.out
		}
	})
}

func main() {
	c := newCLI(os.Args[0], os.Stderr)
	if err := c.parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := loadConfig(*c.configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	c.override(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *c.saveConfig {
		if err := cfg.Save(); err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
		log.Info().Msg("saved config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *c.selfPlay != "" {
		dir, err := runSelfPlay(ctx, *c.selfPlay, cfg)
		if err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *c.selfPlay)
		}
		fmt.Println(dir)
		return
	}

	if c.fs.NArg() < 1 {
		c.fs.Usage()
		os.Exit(2)
	}
	if err := runSearch(ctx, cfg, c.input(), *c.asJSON, os.Stdout); err != nil {
		log.Error().Err(err).Msg("failed to pick a move")
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.InitConfig()
}

func searchOptions(cfg *config.Config) []searcher.Option {
	options := []searcher.Option{
		searcher.WithDepth(cfg.Search.Depth),
		searcher.WithTrials(cfg.Search.Trials),
		searcher.WithGoroutines(cfg.Search.Goroutines),
		searcher.WithTerminalScore(cfg.Search.TerminalScore),
	}
	if cfg.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Search.Seed))
	}
	if cfg.Search.TimeLimit > 0 {
		options = append(options, searcher.WithTimeLimit(time.Duration(cfg.Search.TimeLimit)))
	}
	return options
}

// runSearch decodes input, searches for side +1 and writes the result to w.
func runSearch(ctx context.Context, cfg *config.Config, input string, asJSON bool, w io.Writer) error {
	board, last, err := communication.Decode(input)
	if err != nil {
		return err
	}

	s := searcher.NewAlphaBeta(searchOptions(cfg)...)
	result, err := s.Search(ctx, board, last, 1)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if result.Aborted {
		log.Warn().Msgf("search was cut short, best move so far is %v", result.Move)
	}

	if asJSON {
		return communication.WriteJSON(w, result)
	}
	return communication.WriteText(w, result)
}

// runSelfPlay runs the named experiment and returns its results directory.
func runSelfPlay(ctx context.Context, name string, cfg *config.Config) (string, error) {
	opts := experiments.DefaultOptions()
	opts.Size = cfg.SelfPlay.BoardSize
	opts.NumGames = cfg.SelfPlay.NumGames
	opts.BaseDir = cfg.SelfPlay.OutputDir
	if cfg.Search.Seed != 0 {
		opts.Seed = cfg.Search.Seed
	}

	switch name {
	case "depth":
		return experiments.RunDepthExperiment(ctx, opts)
	case "parallelization":
		return experiments.RunParallelizationExperiment(ctx, opts)
	default:
		return "", fmt.Errorf("%w %q", errUnknownExperiment, name)
	}
}
