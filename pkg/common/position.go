package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidFEN = errors.New("invalid fen")

type coloredPiece struct {
	Type int
	Side bool
}

const pieceChars = "pnbrqk"

func parsePiece(ch rune) (coloredPiece, bool) {
	var i = strings.IndexRune(pieceChars, unicode.ToLower(ch))
	if i < 0 {
		return coloredPiece{}, false
	}
	return coloredPiece{Type: i + Pawn, Side: unicode.IsUpper(ch)}, true
}

func pieceToChar(pieceType int, side bool) byte {
	var c = pieceChars[pieceType-Pawn]
	if side {
		c -= 'a' - 'A'
	}
	return c
}

func createPosition(board *[64]coloredPiece, wtm bool, castleRights, ep, rule50 int) (Position, error) {
	var p = Position{
		WhiteMove:    wtm,
		CastleRights: castleRights,
		EpSquare:     ep,
		Rule50:       rule50,
	}
	for sq, piece := range board {
		if piece.Type != Empty {
			xorPiece(&p, piece.Type, piece.Side, sq)
		}
	}
	if PopCount(p.Kings&p.White) != 1 || PopCount(p.Kings&p.Black) != 1 {
		return Position{}, errors.New("each side needs exactly one king")
	}
	if p.Pawns&(rankMask(Rank1)|rankMask(Rank8)) != 0 {
		return Position{}, errors.New("pawn on first or last rank")
	}
	// Rights without the king and rook on their home squares are dropped.
	for _, c := range [...]struct {
		right      int
		king, rook int
		side       bool
	}{
		{WhiteKingSide, SquareE1, SquareH1, true},
		{WhiteQueenSide, SquareE1, SquareA1, true},
		{BlackKingSide, SquareE8, SquareH8, false},
		{BlackQueenSide, SquareE8, SquareA8, false},
	} {
		var own = p.PiecesByColor(c.side)
		if p.Kings&own&SquareMask[c.king] == 0 || p.Rooks&own&SquareMask[c.rook] == 0 {
			p.CastleRights &^= c.right
		}
	}
	if p.EpSquare != SquareNone {
		if Rank(p.EpSquare) != let(wtm, Rank6, Rank3) {
			return Position{}, errors.New("en passant square on the wrong rank")
		}
		if PawnAttacks(p.EpSquare, !wtm)&p.Pawns&p.PiecesByColor(wtm) == 0 {
			p.EpSquare = SquareNone
		}
	}
	p.Key = p.computeKey()
	p.Checkers = p.computeCheckers()
	if !p.isLegal() {
		return Position{}, errors.New("side not to move is in check")
	}
	return p, nil
}

func rankMask(rank int) uint64 {
	return uint64(0xff) << uint(8*rank)
}

// NewPositionFromFEN parses a FEN string. The move counters are optional.
func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}

	var board [64]coloredPiece
	var ranks = strings.Split(tokens[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}
	for i, row := range ranks {
		var file = 0
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			var piece, ok = parsePiece(ch)
			if !ok || file > FileH {
				return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
			}
			board[MakeSquare(file, Rank8-i)] = piece
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
		}
	}

	var whiteMove bool
	switch tokens[1] {
	case "w":
		whiteMove = true
	case "b":
		whiteMove = false
	default:
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}

	var cr = 0
	for _, ch := range tokens[2] {
		switch ch {
		case 'K':
			cr |= WhiteKingSide
		case 'Q':
			cr |= WhiteQueenSide
		case 'k':
			cr |= BlackKingSide
		case 'q':
			cr |= BlackQueenSide
		case '-':
		default:
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
		}
	}

	var epSquare, err = ParseSquare(tokens[3])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	var rule50 = 0
	if len(tokens) > 4 {
		rule50, err = strconv.Atoi(tokens[4])
		if err != nil || rule50 < 0 {
			return Position{}, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
		}
	}

	p, err := createPosition(&board, whiteMove, cr, epSquare, rule50)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return p, nil
}

// String returns the position as FEN. The fullmove counter is not tracked and is always 1.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var pt, side = p.GetPieceTypeAndSide(MakeSquare(file, rank))
			if pt == Empty {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceToChar(pt, side))
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != Rank1 {
			sb.WriteByte('/')
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteByte('-')
	}
	for i, ch := range "KQkq" {
		if p.CastleRights&(1<<uint(i)) != 0 {
			sb.WriteRune(ch)
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(SquareName(p.EpSquare))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" 1")
	return sb.String()
}

func (p *Position) GetPieceTypeAndSide(sq int) (pieceType int, side bool) {
	var bb = SquareMask[sq]
	if p.White&bb != 0 {
		side = true
	} else if p.Black&bb == 0 {
		return Empty, false
	}
	return p.WhatPiece(sq), side
}

func (p *Position) WhatPiece(sq int) int {
	var bb = SquareMask[sq]
	switch {
	case (p.White|p.Black)&bb == 0:
		return Empty
	case p.Pawns&bb != 0:
		return Pawn
	case p.Knights&bb != 0:
		return Knight
	case p.Bishops&bb != 0:
		return Bishop
	case p.Rooks&bb != 0:
		return Rook
	case p.Queens&bb != 0:
		return Queen
	case p.Kings&bb != 0:
		return King
	}
	panic(fmt.Errorf("corrupt position: colour without piece on %s", SquareName(sq)))
}

func (p *Position) PiecesByColor(side bool) uint64 {
	if side {
		return p.White
	}
	return p.Black
}

func (p *Position) isAttackedBySide(sq int, side bool) bool {
	var enemy = p.PiecesByColor(side)
	var occ = p.White | p.Black
	return PawnAttacks(sq, !side)&p.Pawns&enemy != 0 ||
		KnightAttacks[sq]&p.Knights&enemy != 0 ||
		KingAttacks[sq]&p.Kings&enemy != 0 ||
		BishopAttacks(sq, occ)&(p.Bishops|p.Queens)&enemy != 0 ||
		RookAttacks(sq, occ)&(p.Rooks|p.Queens)&enemy != 0
}

func (p *Position) attackersTo(sq int) uint64 {
	var occ = p.White | p.Black
	return (blackPawnAttacks[sq] & p.Pawns & p.White) |
		(whitePawnAttacks[sq] & p.Pawns & p.Black) |
		(KnightAttacks[sq] & p.Knights) |
		(BishopAttacks(sq, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(sq, occ) & (p.Rooks | p.Queens)) |
		(KingAttacks[sq] & p.Kings)
}

func (p *Position) computeCheckers() uint64 {
	var own = p.PiecesByColor(p.WhiteMove)
	return p.attackersTo(FirstOne(p.Kings&own)) &^ own
}

// isLegal reports whether the side that just moved left its king safe.
func (p *Position) isLegal() bool {
	var kingSq = FirstOne(p.Kings & p.PiecesByColor(!p.WhiteMove))
	return !p.isAttackedBySide(kingSq, p.WhiteMove)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

// MirrorPosition flips the board vertically and swaps colours.
func MirrorPosition(p *Position) Position {
	var board [64]coloredPiece
	for sq := range board {
		var pt, side = p.GetPieceTypeAndSide(sq)
		if pt != Empty {
			board[FlipSquare(sq)] = coloredPiece{pt, !side}
		}
	}
	var cr = (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2)
	var ep = SquareNone
	if p.EpSquare != SquareNone {
		ep = FlipSquare(p.EpSquare)
	}
	var pos, err = createPosition(&board, !p.WhiteMove, cr, ep, p.Rule50)
	if err != nil {
		panic(err)
	}
	return pos
}
