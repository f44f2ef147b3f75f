package arena

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Run plays cfg.Games games between players built by newPlayerA and newPlayerB.
// Every worker owns its own pair of players. Records are returned in game order.
func Run(
	ctx context.Context,
	cfg Config,
	newPlayerA, newPlayerB func() Player,
) ([]GameRecord, error) {
	if len(cfg.Openings) == 0 {
		return nil, errors.New("arena: no openings")
	}
	var concurrency = max(cfg.Concurrency, 1)
	cfg.Logger.Info().
		Int("num_cpu", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("concurrency", concurrency).
		Int("games", cfg.Games).
		Msg("arena started")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan GameRecord)
	var records []GameRecord

	g.Go(func() error {
		defer close(gameInfos)
		return loadGames(ctx, &cfg, gameInfos)
	})

	g.Go(func() error {
		for record := range gameResults {
			records = append(records, record)
			var summary = Summarize(records)
			cfg.Logger.Info().
				Int("game", record.Number).
				Str("result", record.Result).
				Str("termination", record.Termination).
				Int("plies", len(record.Moves)).
				Str("score", summary.String()).
				Msg("finished game")
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, &cfg, newPlayerA(), newPlayerB(), gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b GameRecord) int {
		return a.Number - b.Number
	})
	cfg.Logger.Info().Str("score", Summarize(records).String()).Msg("arena finished")
	return records, nil
}

func playGames(
	ctx context.Context,
	cfg *Config,
	playerA, playerB Player,
	gameInfos <-chan gameInfo,
	gameResults chan<- GameRecord,
) error {
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, cfg, playerA, playerB, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
