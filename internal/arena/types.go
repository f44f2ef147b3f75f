package arena

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawnstorm/pawnstorm/pkg/common"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
)

const (
	gameResultDraw = iota
	gameResultWhiteWins
	gameResultBlackWins
)

// Player is anything that can pick a move. Think may use the board as scratch space
// but must leave it as it found it.
type Player interface {
	Clear()
	Think(ctx context.Context, b *common.Board, clock engine.Clock) common.Move
}

type Config struct {
	Games       int
	Concurrency int
	MaxPlies    int
	Openings    []string // FENs, each played twice with colours swapped
	NameA       string
	NameB       string
	Logger      zerolog.Logger
}

type gameInfo struct {
	opening        string
	engineAIsWhite bool
	gameNumber     int
}

// GameRecord is one finished game as written to the results file.
type GameRecord struct {
	Number      int           `yaml:"number"`
	White       string        `yaml:"white"`
	Black       string        `yaml:"black"`
	AIsWhite    bool          `yaml:"a_is_white"`
	Opening     string        `yaml:"opening"`
	Result      string        `yaml:"result"`
	Termination string        `yaml:"termination"`
	Moves       []string      `yaml:"moves"`
	FinalFEN    string        `yaml:"final_fen"`
	Duration    time.Duration `yaml:"duration"`
}

// pointsA is the score of player A: 1, 0.5 or 0.
func (r GameRecord) pointsA() float64 {
	switch r.Result {
	case "1/2-1/2":
		return 0.5
	case "1-0":
		if r.AIsWhite {
			return 1
		}
	case "0-1":
		if !r.AIsWhite {
			return 1
		}
	}
	return 0
}

func gameResultString(v int) string {
	switch v {
	case gameResultWhiteWins:
		return "1-0"
	case gameResultBlackWins:
		return "0-1"
	}
	return "1/2-1/2"
}
