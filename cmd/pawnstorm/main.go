package main

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pawnstorm/pawnstorm/internal/config"
	"github.com/pawnstorm/pawnstorm/internal/logx"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
	"github.com/pawnstorm/pawnstorm/pkg/uci"
)

const (
	name   = "Pawnstorm"
	author = "Pawnstorm authors"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	cfg, err := config.Load(name, os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	// stdout carries the protocol, so logs go to stderr.
	var logger = logx.NewLogger(os.Stderr, cfg.GetBool(config.ConfigDebug))
	log.Logger = logger

	logger.Info().
		Str("version", versionName).
		Str("build_date", buildDate).
		Str("git_revision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Interface("settings", cfg.SanitizedSettings()).
		Msg(name)

	var eng = engine.NewEngine(cfg.Evaluator(), cfg.EngineOptions())
	eng.Logger = logger

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Hash", Min: 1, Max: 1 << 16, Value: &eng.Hash},
			&uci.MillisecondsOption{Name: "MoveTime", Min: 1, Max: int(time.Hour.Milliseconds()), Value: &eng.MoveTime},
			&uci.IntOption{Name: "MaxDepth", Min: 1, Max: 127, Value: &eng.MaxDepth},
			&uci.SeedOption{Name: "Seed", Value: &eng.Seed},
		},
	)
	protocol.Run(logger)
}
