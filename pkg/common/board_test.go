package common

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := NewBoard(fen)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, lan := range moves {
		m, err := b.ParseMove(lan)
		if err != nil {
			t.Fatal(err)
		}
		b.MakeMove(m)
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 12 1",
	} {
		is := is.New(t)
		p, err := NewPositionFromFEN(fen)
		is.NoErr(err)
		is.Equal(p.String(), fen)
	}
}

func TestInvalidFEN(t *testing.T) {
	for _, fen := range []string{
		"",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"k7/8/8/8/8/8/8/K6r b - - 0 1",
		"k7/8/8/8/8/8/8/K3P3 w - - 0 1",
	} {
		_, err := NewPositionFromFEN(fen)
		if !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("%q: got %v", fen, err)
		}
	}
}

func TestMakeUndoRestoresHash(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, InitialPositionFen)
	var start = b.Hash()
	var moves []Move
	for _, lan := range []string{"e2e4", "d7d5", "e4d5", "g8f6", "f1b5", "c7c6", "d5c6", "d8d2"} {
		m, err := b.ParseMove(lan)
		is.NoErr(err)
		b.MakeMove(m)
		moves = append(moves, m)
	}
	is.Equal(b.Ply(), len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		b.UndoMove(moves[i])
	}
	is.Equal(b.Hash(), start)
	is.Equal(b.Position().String(), InitialPositionFen)
}

func TestTranspositionsHashEqual(t *testing.T) {
	is := is.New(t)
	b1 := mustBoard(t, InitialPositionFen)
	b2 := mustBoard(t, InitialPositionFen)
	play(t, b1, "g1f3", "g8f6", "b1c3")
	play(t, b2, "b1c3", "g8f6", "g1f3")
	is.Equal(b1.Hash(), b2.Hash())

	b3 := mustBoard(t, InitialPositionFen)
	play(t, b3, "g1f3")
	is.True(b3.Hash() != b1.Hash())
}

func TestUndoWrongMovePanics(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, InitialPositionFen)
	play(t, b, "e2e4")
	other, err := mustBoard(t, InitialPositionFen).ParseMove("d2d4")
	is.NoErr(err)
	defer func() {
		is.True(recover() != nil)
	}()
	b.UndoMove(other)
}

func TestMakeIllegalMovePanics(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	var m = makeMove(SquareE1, SquareD1+8, King, Empty) // e1d2 stays on the rook's rank
	defer func() {
		var r = recover()
		is.True(r != nil)
		is.Equal(b.Ply(), 0)
	}()
	b.MakeMove(m)
}

func TestParseMoveRejectsIllegal(t *testing.T) {
	b := mustBoard(t, InitialPositionFen)
	_, err := b.ParseMove("e2e5")
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatal(err)
	}
}

func TestStatus(t *testing.T) {
	var tests = []struct {
		fen    string
		status Status
	}{
		{InitialPositionFen, Ongoing},
		{"7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", Checkmate},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"7k/8/6K1/8/8/8/8/R7 b - - 100 80", FiftyMoveRule},
		{"7k/8/6K1/8/8/8/8/5N2 b - - 0 1", InsufficientMaterial},
		{"7k/8/6K1/8/8/8/8/8 w - - 0 1", InsufficientMaterial},
	}
	for _, test := range tests {
		is := is.New(t)
		b := mustBoard(t, test.fen)
		is.Equal(b.Status(), test.status)
	}
}

func TestCheckmateBeatsFiftyMoveRule(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 100 1")
	is.Equal(b.Status(), Checkmate)
	is.True(b.IsInCheckmate())
	is.True(!b.IsDraw())
}

func TestRepetition(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, InitialPositionFen)
	is.True(!b.IsRepeatedPosition())
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	is.True(b.IsRepeatedPosition())
	is.Equal(b.Status(), Ongoing)
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	is.Equal(b.Status(), ThreefoldRepetition)
	is.True(b.IsDraw())
}

func TestPawnMoveResetsRepetition(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, InitialPositionFen)
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8", "e2e4", "e7e5", "g1f3", "g8f6", "f3g1", "f6g8")
	is.True(b.IsRepeatedPosition())
	is.Equal(b.repetitions(), 2)
}

func TestDoublePushRepetition(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, InitialPositionFen)
	play(t, b, "e2e4", "e7e5")
	var key = b.Hash()
	is.Equal(b.Position().EpSquare, SquareNone) // no white pawn can take on e6
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	is.Equal(b.Hash(), key)
	is.True(b.IsRepeatedPosition())
}

func TestEnPassantSquareOnlyWhenCapturable(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	play(t, b, "e2e4")
	is.Equal(SquareName(b.Position().EpSquare), "e3")
	is.Equal(b.Position().Key, b.Position().computeKey())
	_, err := b.ParseMove("d4e3")
	is.NoErr(err)

	b = mustBoard(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	play(t, b, "e2e4")
	is.Equal(b.Position().EpSquare, SquareNone)
	is.Equal(b.Position().Key, b.Position().computeKey())

	withEp, err := NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	is.NoErr(err)
	withoutEp, err := NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	is.NoErr(err)
	is.Equal(withEp.Key, withoutEp.Key)
	is.Equal(withEp.String(), withoutEp.String())

	_, err = NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e6 0 1")
	is.True(errors.Is(err, ErrInvalidFEN))
}

func TestEnPassantAndPromotion(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, "4k3/1P6/8/3pP3/8/8/8/4K3 w - d6 0 1")
	play(t, b, "e5d6")
	is.Equal(b.Position().WhatPiece(MakeSquare(FileD, Rank5)), Empty)
	play(t, b, "e8f7", "b7b8n")
	is.Equal(b.Position().WhatPiece(SquareB8), Knight)
	is.Equal(b.Position().Key, b.Position().computeKey())
}

func TestCastling(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, b, "e1g1")
	is.Equal(b.Position().WhatPiece(SquareF1), Rook)
	is.Equal(b.Position().CastleRights, BlackKingSide|BlackQueenSide)
	play(t, b, "e8c8")
	is.Equal(b.Position().WhatPiece(SquareD8), Rook)
	is.Equal(b.Position().CastleRights, 0)
}

func TestCastlingThroughAttack(t *testing.T) {
	is := is.New(t)
	b := mustBoard(t, "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1")
	_, err := b.ParseMove("e1g1")
	is.True(err != nil)
	_, err = b.ParseMove("e1c1")
	is.NoErr(err)
}

func TestMirrorPosition(t *testing.T) {
	is := is.New(t)
	p, err := NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	is.NoErr(err)
	var m = MirrorPosition(&p)
	is.Equal(m.WhiteMove, false)
	var back = MirrorPosition(&m)
	is.Equal(back.String(), p.String())
	is.Equal(perft(&m, 2), perft(&p, 2))
}
