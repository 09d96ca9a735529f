package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"atropos/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	quick := metrics.AgentConfig{ID: 1, Depth: 1, Trials: 2, Goroutines: 1}
	opts := Options{Size: 4, NumGames: 2, Seed: 3, BaseDir: t.TempDir()}

	dir, err := Run(context.Background(), "smoke", []metrics.AgentConfig{quick, baseline},
		[][]metrics.AgentConfig{{quick, baseline}}, opts)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(opts.BaseDir, "smoke"), filepath.Dir(dir))
	require.Len(t, readCSV(t, filepath.Join(dir, "agent_configs.csv")), 3)

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 3, "Should record every game")
	require.Equal(t, "1", games[1][4], "First game should start with side +1")
	require.Equal(t, "-1", games[2][4], "Second game should start with side -1")

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{Size: 4, NumGames: 1, Seed: 1, BaseDir: t.TempDir()}

	_, err := Run(ctx, "cancelled", []metrics.AgentConfig{baseline}, [][]metrics.AgentConfig{{baseline, baseline}}, opts)

	require.ErrorIs(t, err, context.Canceled)
}
