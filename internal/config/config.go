package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pawnstorm/pawnstorm/pkg/engine"
	eval "github.com/pawnstorm/pawnstorm/pkg/eval/material"
)

const (
	ConfigFile           = "config"
	ConfigDebug          = "debug"
	ConfigHash           = "hash"
	ConfigMoveTime       = "move-time"
	ConfigMaxDepth       = "max-depth"
	ConfigSeed           = "seed"
	ConfigMobilityWeight = "mobility-weight"
	ConfigCheckPenalty   = "check-penalty"

	ConfigGames         = "games"
	ConfigConcurrency   = "concurrency"
	ConfigOpenings      = "openings"
	ConfigOutput        = "output"
	ConfigCompress      = "compress"
	ConfigMaxPlies      = "max-plies"
	ConfigBaselineDepth = "baseline-depth"
	ConfigOpponent      = "opponent"
)

// Evaluation terms are bounded so static scores stay well below mate scores.
const (
	maxMobilityWeight = 50
	maxCheckPenalty   = 1000
)

type Config struct {
	*viper.Viper
}

// Load reads flags, then PAWNSTORM_* environment variables, then an optional config file.
// Explicit flags win over the environment, which wins over the file.
func Load(name string, args []string) (*Config, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(ConfigFile, "", "path of a YAML config file")
	fs.Bool(ConfigDebug, false, "log search iterations")
	fs.Int(ConfigHash, 64, "transposition table size in megabytes")
	fs.Int(ConfigMoveTime, 500, "thinking time per move in milliseconds")
	fs.Int(ConfigMaxDepth, 100, "maximum iterative deepening depth")
	fs.Uint64(ConfigSeed, 0, "move ordering seed, 0 seeds from the OS")
	fs.Int(ConfigMobilityWeight, 2, "evaluation bonus per legal move of advantage")
	fs.Int(ConfigCheckPenalty, 0, "evaluation penalty for being in check")

	fs.Int(ConfigGames, 10, "number of arena games")
	fs.Int(ConfigConcurrency, 4, "games played at once")
	fs.String(ConfigOpenings, "", "opening book file, empty for the built-in book")
	fs.String(ConfigOutput, "", "file for game records, empty for none")
	fs.Bool(ConfigCompress, false, "zstd-compress the game records")
	fs.Int(ConfigMaxPlies, 400, "adjudicate a draw after this many plies")
	fs.Int(ConfigBaselineDepth, 3, "search depth of the baseline opponent")
	fs.String(ConfigOpponent, "baseline", "opponent of the engine: baseline or engine")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("pawnstorm")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if path := v.GetString(ConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %v: %w", path, err)
		}
	}

	c := &Config{Viper: v}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	for _, key := range []string{ConfigHash, ConfigMoveTime, ConfigMaxDepth, ConfigConcurrency} {
		if c.GetInt(key) <= 0 {
			return fmt.Errorf("%v must be positive, got %v", key, c.GetInt(key))
		}
	}
	for _, r := range []struct {
		key      string
		min, max int
	}{
		{ConfigMobilityWeight, 0, maxMobilityWeight},
		{ConfigCheckPenalty, 0, maxCheckPenalty},
	} {
		if v := c.GetInt(r.key); v < r.min || v > r.max {
			return fmt.Errorf("%v must be in [%v, %v], got %v", r.key, r.min, r.max, v)
		}
	}
	if o := c.GetString(ConfigOpponent); o != "baseline" && o != "engine" {
		return fmt.Errorf("unknown opponent %q", o)
	}
	return nil
}

func (c *Config) EngineOptions() engine.Options {
	var options = engine.NewOptions()
	options.Hash = c.GetInt(ConfigHash)
	options.MoveTime = c.MoveTime()
	options.MaxDepth = c.GetInt(ConfigMaxDepth)
	options.Seed = c.GetUint64(ConfigSeed)
	return options
}

func (c *Config) Evaluator() *eval.EvaluationService {
	return &eval.EvaluationService{
		MobilityWeight: c.GetInt(ConfigMobilityWeight),
		CheckPenalty:   c.GetInt(ConfigCheckPenalty),
	}
}

func (c *Config) MoveTime() time.Duration {
	return time.Duration(c.GetInt(ConfigMoveTime)) * time.Millisecond
}

// SanitizedSettings returns every setting except the config file path.
func (c *Config) SanitizedSettings() map[string]any {
	var settings = c.AllSettings()
	delete(settings, ConfigFile)
	return settings
}
