package common

var castleMask [64]int

func init() {
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}

// MakeMove writes the position after move into result.
// It returns false, leaving result undefined, if the move would leave the mover's king attacked.
// The move must be pseudo-legal for src.
func (src *Position) MakeMove(move Move, result *Position) bool {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var side = src.WhiteMove

	*result = *src
	result.WhiteMove = !side
	result.Key ^= sideKey

	result.CastleRights = src.CastleRights & castleMask[from] & castleMask[to]
	result.Key ^= castlingKey[result.CastleRights^src.CastleRights]

	if movingPiece == Pawn || capturedPiece != Empty {
		result.Rule50 = 0
	} else {
		result.Rule50++
	}

	result.EpSquare = SquareNone
	if src.EpSquare != SquareNone {
		result.Key ^= enpassantKey[File(src.EpSquare)]
	}

	if capturedPiece != Empty {
		if movingPiece == Pawn && to == src.EpSquare {
			xorPiece(result, Pawn, !side, to+let(side, -8, 8))
		} else {
			xorPiece(result, capturedPiece, !side, to)
		}
	}

	movePiece(result, movingPiece, side, from, to)

	switch movingPiece {
	case Pawn:
		if to-from == 16 || from-to == 16 {
			// The ep square only counts when an enemy pawn can capture on it.
			var ep = (from + to) / 2
			if PawnAttacks(ep, side)&result.Pawns&result.PiecesByColor(!side) != 0 {
				result.EpSquare = ep
				result.Key ^= enpassantKey[File(ep)]
			}
		} else if promotion := move.Promotion(); promotion != Empty {
			xorPiece(result, Pawn, side, to)
			xorPiece(result, promotion, side, to)
		}
	case King:
		switch {
		case from == SquareE1 && to == SquareG1:
			movePiece(result, Rook, true, SquareH1, SquareF1)
		case from == SquareE1 && to == SquareC1:
			movePiece(result, Rook, true, SquareA1, SquareD1)
		case from == SquareE8 && to == SquareG8:
			movePiece(result, Rook, false, SquareH8, SquareF8)
		case from == SquareE8 && to == SquareC8:
			movePiece(result, Rook, false, SquareA8, SquareD8)
		}
	}

	if !result.isLegal() {
		return false
	}
	result.Checkers = result.computeCheckers()
	result.LastMove = move
	return true
}

// MakeNullMove passes the turn. Only valid when the side to move is not in check.
func (src *Position) MakeNullMove(result *Position) {
	*result = *src
	result.Rule50++
	result.WhiteMove = !src.WhiteMove
	result.Key ^= sideKey
	result.EpSquare = SquareNone
	if src.EpSquare != SquareNone {
		result.Key ^= enpassantKey[File(src.EpSquare)]
	}
	result.Checkers = 0
	result.LastMove = MoveEmpty
}

func pieceBoard(p *Position, piece int) *uint64 {
	switch piece {
	case Pawn:
		return &p.Pawns
	case Knight:
		return &p.Knights
	case Bishop:
		return &p.Bishops
	case Rook:
		return &p.Rooks
	case Queen:
		return &p.Queens
	}
	return &p.Kings
}

func xorPiece(p *Position, piece int, side bool, square int) {
	var b = SquareMask[square]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	*pieceBoard(p, piece) ^= b
	p.Key ^= PieceSquareKey(piece, side, square)
}

func movePiece(p *Position, piece int, side bool, from, to int) {
	var b = SquareMask[from] ^ SquareMask[to]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	*pieceBoard(p, piece) ^= b
	p.Key ^= PieceSquareKey(piece, side, from) ^ PieceSquareKey(piece, side, to)
}
