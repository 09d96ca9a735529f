package config

import "atropos/meta"

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		Search: SearchConfig{
			Depth:         meta.DEPTH,
			Trials:        meta.MC_SIM,
			Goroutines:    meta.GO_ROUTINES,
			TerminalScore: meta.TERMINAL_SCORE,
		},
		SelfPlay: SelfPlayConfig{
			BoardSize: meta.BOARD_SIZE,
			NumGames:  10,
			OutputDir: "experiments",
		},
		LogLevel: "info",
	}
}
