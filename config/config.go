package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "atropos/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// SearchConfig holds the move search settings.
type SearchConfig struct {
	Depth         int      `json:"depth"`
	Trials        int      `json:"mc_sim"`
	Goroutines    int      `json:"goroutines"`
	Seed          uint64   `json:"seed"` // 0 seeds from the clock
	TerminalScore int      `json:"terminal_score"`
	TimeLimit     Duration `json:"time_limit"` // 0 means no limit
}

// SelfPlayConfig holds the settings of self-play experiments.
type SelfPlayConfig struct {
	BoardSize int    `json:"board_size"`
	NumGames  int    `json:"num_games"`
	OutputDir string `json:"output_dir"`
}

type Config struct {
	Search   SearchConfig   `json:"search"`
	SelfPlay SelfPlayConfig `json:"self_play"`
	LogLevel string         `json:"log_level"`
}

// Duration reads and writes a time.Duration as a string such as "1.5s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// InitConfig returns the defaults overridden by the user's config file, if any.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Search
	if s.Depth < 1 {
		return &InvalidConfig{fmt.Sprintf("depth must be at least 1, got %d", s.Depth)}
	}
	if s.Trials < 1 {
		return &InvalidConfig{fmt.Sprintf("mc_sim must be at least 1, got %d", s.Trials)}
	}
	if s.Goroutines < 1 {
		return &InvalidConfig{fmt.Sprintf("goroutines must be at least 1, got %d", s.Goroutines)}
	}
	if s.TerminalScore <= s.Trials {
		return &InvalidConfig{fmt.Sprintf("terminal_score %d must exceed mc_sim %d", s.TerminalScore, s.Trials)}
	}
	if s.TimeLimit < 0 {
		return &InvalidConfig{"time_limit can't be negative"}
	}
	if c.SelfPlay.BoardSize < 1 {
		return &InvalidConfig{fmt.Sprintf("board_size must be at least 1, got %d", c.SelfPlay.BoardSize)}
	}
	if c.SelfPlay.NumGames < 1 {
		return &InvalidConfig{fmt.Sprintf("num_games must be at least 1, got %d", c.SelfPlay.NumGames)}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("log_level %q: %v", c.LogLevel, err)}
	}
	return nil
}

// Level is the configured zerolog level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Save writes c to the user's config file.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", filePath, err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
