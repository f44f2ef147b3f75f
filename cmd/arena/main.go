package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/pawnstorm/pawnstorm/internal/arena"
	"github.com/pawnstorm/pawnstorm/internal/config"
	"github.com/pawnstorm/pawnstorm/internal/logx"
	"github.com/pawnstorm/pawnstorm/pkg/baseline"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
)

func main() {
	cfg, err := config.Load("arena", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	log.Logger = logx.NewLogger(os.Stderr, cfg.GetBool(config.ConfigDebug))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	openings, err := arena.LoadOpenings(cfg.GetString(config.ConfigOpenings))
	if err != nil {
		return err
	}

	var newEngine = func() arena.Player {
		var eng = engine.NewEngine(cfg.Evaluator(), cfg.EngineOptions())
		eng.Logger = log.Logger
		eng.Prepare()
		return eng
	}
	var opponent = cfg.GetString(config.ConfigOpponent)
	var newOpponent = newEngine
	if opponent == "baseline" {
		newOpponent = func() arena.Player {
			return baseline.NewPlayer(cfg.GetInt(config.ConfigBaselineDepth), cfg.MoveTime())
		}
	}

	log.Info().Interface("settings", cfg.SanitizedSettings()).Msg("arena config")

	records, err := arena.Run(ctx, arena.Config{
		Games:       cfg.GetInt(config.ConfigGames),
		Concurrency: cfg.GetInt(config.ConfigConcurrency),
		MaxPlies:    cfg.GetInt(config.ConfigMaxPlies),
		Openings:    openings,
		NameA:       "pawnstorm",
		NameB:       opponent,
		Logger:      log.Logger,
	}, newEngine, newOpponent)
	if err != nil {
		return err
	}

	var summary = arena.Summarize(records)
	fmt.Println(summary)

	if path := cfg.GetString(config.ConfigOutput); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := arena.WriteRecords(f, records, cfg.GetBool(config.ConfigCompress)); err != nil {
			return err
		}
		log.Info().Str("path", path).Int("games", len(records)).Msg("records written")
	}
	return nil
}
