package common

// Move packs from | to<<6 | moving piece<<12 | captured piece<<15 | promotion<<18.
type Move int32

const MoveEmpty = Move(0)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from | to<<6 | movingPiece<<12 | capturedPiece<<15)
}

func makePromotion(from, to, capturedPiece, promotion int) Move {
	return Move(from | to<<6 | Pawn<<12 | capturedPiece<<15 | promotion<<18)
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) IsCapture() bool {
	return m.CapturedPiece() != Empty
}

// String returns the move in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var s = SquareName(m.From()) + SquareName(m.To())
	if m.Promotion() != Empty {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}
