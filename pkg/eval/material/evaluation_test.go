package eval

import (
	"testing"

	"github.com/matryer/is"

	"github.com/pawnstorm/pawnstorm/pkg/common"
)

var testFENs = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"3k4/8/8/8/8/8/8/NNNNKNNN w - - 0 1",
	"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
}

func mustPosition(t *testing.T, fen string) common.Position {
	t.Helper()
	p, err := common.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMirrorSymmetry(t *testing.T) {
	var services = []*EvaluationService{
		NewEvaluationService(),
		{MobilityWeight: 0},
		{MobilityWeight: 5, CheckPenalty: 50},
	}
	for _, e := range services {
		for _, fen := range testFENs {
			is := is.New(t)
			var p = mustPosition(t, fen)
			var mirror = common.MirrorPosition(&p)
			is.Equal(e.Evaluate(&p), e.Evaluate(&mirror)) // mirrored position scores the same for its mover
		}
	}
}

func TestMaterialAdvantage(t *testing.T) {
	is := is.New(t)
	var e = NewEvaluationService()
	var p = mustPosition(t, "3k4/8/8/8/8/8/8/NNNNKNNN w - - 0 1")
	is.True(e.Evaluate(&p) > 0)
	p = mustPosition(t, "3k4/8/8/8/8/8/8/NNNNKNNN b - - 0 1")
	is.True(e.Evaluate(&p) < 0)
}

func TestMaterialMonotone(t *testing.T) {
	is := is.New(t)
	var e = &EvaluationService{}
	var base = mustPosition(t, "4k3/pppppppp/8/8/8/8/PPPPPPPP/4K3 w - - 0 1")
	var extraQueen = mustPosition(t, "4k3/pppppppp/8/8/8/8/PPPPPPPP/3QK3 w - - 0 1")
	var lessPawn = mustPosition(t, "4k3/pppppppp/8/8/8/8/PPPPPPP1/3QK3 w - - 0 1")
	is.Equal(e.Evaluate(&base), 0)
	is.Equal(e.Evaluate(&extraQueen), PieceValues[common.Queen])
	is.True(e.Evaluate(&lessPawn) < e.Evaluate(&extraQueen))
}

func TestCheckPenalty(t *testing.T) {
	is := is.New(t)
	var p = mustPosition(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	var e = &EvaluationService{MobilityWeight: 3, CheckPenalty: 40}
	is.Equal(e.Evaluate(&p), -PieceValues[common.Rook]-40)
}

func TestPure(t *testing.T) {
	is := is.New(t)
	var e = NewEvaluationService()
	var p = mustPosition(t, testFENs[1])
	var before = p
	var first = e.Evaluate(&p)
	is.Equal(e.Evaluate(&p), first)
	is.Equal(p, before)
}
