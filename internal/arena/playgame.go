package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/pawnstorm/pawnstorm/pkg/common"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
)

func playGame(
	ctx context.Context,
	cfg *Config,
	playerA, playerB Player,
	info gameInfo,
) (GameRecord, error) {
	var start = time.Now()
	cfg.Logger.Debug().Int("game", info.gameNumber).Msg("started game")

	playerA.Clear()
	playerB.Clear()

	var board, err = common.NewBoard(info.opening)
	if err != nil {
		return GameRecord{}, err
	}

	var record = GameRecord{
		Number:   info.gameNumber,
		AIsWhite: info.engineAIsWhite,
		Opening:  info.opening,
		White:    cfg.NameA,
		Black:    cfg.NameB,
	}
	if !info.engineAIsWhite {
		record.White, record.Black = record.Black, record.White
	}
	var finish = func(result int, termination string) (GameRecord, error) {
		record.Result = gameResultString(result)
		record.Termination = termination
		record.FinalFEN = board.Position().String()
		record.Duration = time.Since(start)
		return record, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return GameRecord{}, err
		}
		switch status := board.Status(); status {
		case common.Ongoing:
		case common.Checkmate:
			if board.WhiteToMove() {
				return finish(gameResultBlackWins, status.String())
			}
			return finish(gameResultWhiteWins, status.String())
		default:
			return finish(gameResultDraw, status.String())
		}
		if cfg.MaxPlies > 0 && board.Ply() >= cfg.MaxPlies {
			return finish(gameResultDraw, "max plies")
		}

		var player = playerB
		if board.WhiteToMove() == info.engineAIsWhite {
			player = playerA
		}
		var move = player.Think(ctx, board.Clone(), engine.NewClock())
		var legal, err = board.ParseMove(move.String())
		if err != nil || move == common.MoveEmpty {
			return GameRecord{}, fmt.Errorf("game %v: %w: %v in %v",
				info.gameNumber, common.ErrIllegalMove, move, board.Position())
		}
		board.MakeMove(legal)
		record.Moves = append(record.Moves, legal.String())
	}
}
