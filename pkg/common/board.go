package common

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIllegalMove = errors.New("illegal move")

type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
	ThreefoldRepetition
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	case ThreefoldRepetition:
		return "threefold repetition"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) IsDraw() bool {
	return s != Ongoing && s != Checkmate
}

// Board is a mutable game: the current position plus every position since the start.
// MakeMove and UndoMove are strictly LIFO.
type Board struct {
	positions []Position
}

func NewBoard(fen string) (*Board, error) {
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewBoardFromPosition(p), nil
}

func NewBoardFromPosition(p Position) *Board {
	var positions = make([]Position, 1, 256)
	positions[0] = p
	return &Board{positions: positions}
}

// Clone returns an independent copy that shares no state with b.
func (b *Board) Clone() *Board {
	var positions = make([]Position, len(b.positions), cap(b.positions))
	copy(positions, b.positions)
	return &Board{positions: positions}
}

func (b *Board) Position() *Position {
	return &b.positions[len(b.positions)-1]
}

// Ply is the number of moves made since the board was created.
func (b *Board) Ply() int {
	return len(b.positions) - 1
}

func (b *Board) Hash() uint64 {
	return b.Position().Key
}

func (b *Board) WhiteToMove() bool {
	return b.Position().WhiteMove
}

func (b *Board) IsInCheck() bool {
	return b.Position().IsCheck()
}

func (b *Board) LegalMoves() []Move {
	var buffer = make([]Move, MaxMoves)
	return b.Position().GenerateLegalMoves(buffer)
}

// GenerateLegalMoves fills buffer (capacity MaxMoves) without allocating.
func (b *Board) GenerateLegalMoves(buffer []Move) []Move {
	return b.Position().GenerateLegalMoves(buffer)
}

// MakeMove plays a legal move. It panics if the move is not legal in the current position.
func (b *Board) MakeMove(m Move) {
	var n = len(b.positions)
	var from = m.From()
	var cur = &b.positions[n-1]
	if pt, side := cur.GetPieceTypeAndSide(from); m == MoveEmpty || pt != m.MovingPiece() || side != cur.WhiteMove {
		panic(fmt.Errorf("%w: %v in %v", ErrIllegalMove, m, cur))
	}
	b.positions = append(b.positions, Position{})
	if !b.positions[n-1].MakeMove(m, &b.positions[n]) {
		b.positions = b.positions[:n]
		panic(fmt.Errorf("%w: %v in %v", ErrIllegalMove, m, &b.positions[n-1]))
	}
}

// UndoMove takes back m, which must be the most recent move made.
func (b *Board) UndoMove(m Move) {
	var n = len(b.positions)
	if n < 2 || b.positions[n-1].LastMove != m {
		panic(fmt.Errorf("undo of %v does not match the last move made", m))
	}
	b.positions = b.positions[:n-1]
}

// ParseMove finds the legal move written in long algebraic notation.
func (b *Board) ParseMove(lan string) (Move, error) {
	for _, m := range b.LegalMoves() {
		if strings.EqualFold(m.String(), lan) {
			return m, nil
		}
	}
	return MoveEmpty, fmt.Errorf("%w: %q in %v", ErrIllegalMove, lan, b.Position())
}

// IsRepeatedPosition reports whether the current position occurred earlier in the game.
func (b *Board) IsRepeatedPosition() bool {
	return b.repetitions() > 1
}

// repetitions counts occurrences of the current position, itself included,
// back to the last capture or pawn move.
func (b *Board) repetitions() int {
	var n = len(b.positions) - 1
	var p = &b.positions[n]
	var count = 1
	for i := n - 2; i >= 0 && i >= n-p.Rule50; i -= 2 {
		if b.positions[i].Key == p.Key {
			count++
		}
	}
	return count
}

func (b *Board) Status() Status {
	var p = b.Position()
	if !p.HasLegalMove() {
		if p.IsCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if p.Rule50 >= 100 {
		return FiftyMoveRule
	}
	if p.IsInsufficientMaterial() {
		return InsufficientMaterial
	}
	if b.repetitions() >= 3 {
		return ThreefoldRepetition
	}
	return Ongoing
}

func (b *Board) IsInCheckmate() bool {
	return b.IsInCheck() && !b.Position().HasLegalMove()
}

func (b *Board) IsDraw() bool {
	return b.Status().IsDraw()
}

// Positions returns the game history, oldest first. The slice must not be modified.
func (b *Board) Positions() []Position {
	return b.positions
}
