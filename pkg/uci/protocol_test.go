package uci

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pawnstorm/pawnstorm/pkg/common"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
	eval "github.com/pawnstorm/pawnstorm/pkg/eval/material"
)

func newTestProtocol(in string) (*Protocol, *engine.Engine, *bytes.Buffer) {
	var options = engine.NewOptions()
	options.Hash = 1
	options.Seed = 1
	var eng = engine.NewEngine(eval.NewEvaluationService(), options)
	var p = New("pawnstorm", "test", "dev", eng, []Option{
		&IntOption{Name: "Hash", Min: 1, Max: 1024, Value: &eng.Hash},
		&MillisecondsOption{Name: "MoveTime", Min: 1, Max: 60000, Value: &eng.MoveTime},
		&SeedOption{Name: "Seed", Value: &eng.Seed},
	})
	var out = &bytes.Buffer{}
	p.in = strings.NewReader(in)
	p.out = out
	return p, eng, out
}

func TestUciHandshake(t *testing.T) {
	var p, _, out = newTestProtocol("")
	require.NoError(t, p.handle("uci"))
	require.NoError(t, p.handle("isready"))
	var lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, "id name pawnstorm dev", lines[0])
	require.Equal(t, "id author test", lines[1])
	require.Equal(t, "option name Hash type spin default 1 min 1 max 1024", lines[2])
	require.Equal(t, "option name MoveTime type spin default 500 min 1 max 60000", lines[3])
	require.Equal(t, "option name Seed type string default 1", lines[4])
	require.Equal(t, []string{"uciok", "readyok"}, lines[5:])
}

func TestSetOption(t *testing.T) {
	var p, eng, _ = newTestProtocol("")
	require.NoError(t, p.handle("setoption name Hash value 16"))
	require.NoError(t, p.handle("setoption name movetime value 250"))
	require.NoError(t, p.handle("setoption name Seed value 42"))
	require.Equal(t, 16, eng.Hash)
	require.Equal(t, 250*time.Millisecond, eng.MoveTime)
	require.Equal(t, uint64(42), eng.Seed)

	require.Error(t, p.handle("setoption name Hash value 0"))
	require.Error(t, p.handle("setoption name Hash value lots"))
	require.Error(t, p.handle("setoption name Ponder value true"))
	require.Error(t, p.handle("setoption Hash 16"))
	require.Equal(t, 16, eng.Hash)
}

func TestPositionCommand(t *testing.T) {
	var p, _, _ = newTestProtocol("")
	require.NoError(t, p.handle("position startpos moves e2e4 e7e5 g1f3"))
	require.Equal(t, 3, p.board.Ply())
	require.False(t, p.board.WhiteToMove())

	const fen = "k7/8/8/3q4/4Q3/8/8/7K w - - 0 1"
	require.NoError(t, p.handle("position fen "+fen))
	require.Equal(t, fen, p.board.Position().String())

	require.NoError(t, p.handle("position fen "+fen+" moves e4d5"))
	require.Equal(t, 1, p.board.Ply())

	require.ErrorIs(t, p.handle("position startpos moves e2e5"), common.ErrIllegalMove)
	require.ErrorIs(t, p.handle("position fen 8/8/8/8/8/8/8/8 w - - 0 1"), common.ErrInvalidFEN)
	require.Error(t, p.handle("position"))
	require.Equal(t, 1, p.board.Ply()) // failed commands keep the previous position
}

func TestGoReportsBestMove(t *testing.T) {
	var p, _, out = newTestProtocol("")
	require.NoError(t, p.handle("position fen k7/8/8/3q4/4Q3/8/8/7K w - - 0 1"))
	require.NoError(t, p.handle("go depth 2"))
	require.True(t, p.thinking)
	require.Error(t, p.handle("position startpos"))
	p.waitSearch()
	require.False(t, p.thinking)

	var lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, "bestmove e4d5", lines[len(lines)-1])
	require.True(t, strings.HasPrefix(lines[0], "info depth 1 score cp "))
	require.Contains(t, lines[0], " pv e4d5")
}

func TestStopInterruptsInfiniteSearch(t *testing.T) {
	var p, _, out = newTestProtocol("")
	require.NoError(t, p.handle("go infinite"))
	require.NoError(t, p.handle("stop"))
	p.waitSearch()

	var lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	var last = lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "bestmove "))
	var b, err = common.NewBoard(common.InitialPositionFen)
	require.NoError(t, err)
	_, err = b.ParseMove(strings.TrimPrefix(last, "bestmove "))
	require.NoError(t, err)
}

func TestRunStopsSearchOnQuit(t *testing.T) {
	var p, _, out = newTestProtocol("uci\nisready\nposition startpos moves e2e4\ngo infinite\nquit\n")
	var done = make(chan struct{})
	go func() {
		p.Run(zerolog.Nop())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	require.Contains(t, out.String(), "uciok\n")
	require.Contains(t, out.String(), "readyok\n")
	require.Contains(t, out.String(), "bestmove ")
}

func TestParseLimits(t *testing.T) {
	var limits, err = parseLimits(strings.Fields("wtime 1000 btime 2000 winc 10 binc 20 movestogo 5 depth 7"))
	require.NoError(t, err)
	require.Equal(t, engine.LimitsType{
		WhiteTime:      1000,
		BlackTime:      2000,
		WhiteIncrement: 10,
		BlackIncrement: 20,
		MovesToGo:      5,
		Depth:          7,
	}, limits)

	limits, err = parseLimits([]string{"movetime", "300"})
	require.NoError(t, err)
	require.Equal(t, 300, limits.MoveTime)

	limits, err = parseLimits([]string{"infinite"})
	require.NoError(t, err)
	require.True(t, limits.Infinite)

	_, err = parseLimits([]string{"depth"})
	require.Error(t, err)
	_, err = parseLimits([]string{"depth", "x"})
	require.Error(t, err)
}

func TestSearchInfoToUci(t *testing.T) {
	var b, err = common.NewBoard(common.InitialPositionFen)
	require.NoError(t, err)
	var move, _ = b.ParseMove("e2e4")
	var line = searchInfoToUci(engine.SearchInfo{
		Move:     move,
		Score:    35,
		Depth:    4,
		Nodes:    999,
		Time:     0,
		MainLine: []common.Move{move},
	})
	require.Equal(t, "info depth 4 score cp 35 nodes 999 time 0 nps 999000 pv e2e4", line)
}
