package common

const (
	f1g1Mask = (uint64(1) << SquareF1) | (uint64(1) << SquareG1)
	b1d1Mask = (uint64(1) << SquareB1) | (uint64(1) << SquareC1) | (uint64(1) << SquareD1)
	f8g8Mask = (uint64(1) << SquareF8) | (uint64(1) << SquareG8)
	b8d8Mask = (uint64(1) << SquareB8) | (uint64(1) << SquareC8) | (uint64(1) << SquareD8)
)

func addPawnMoves(ml []Move, count, from, to, captured int) int {
	if Rank(to) == Rank8 || Rank(to) == Rank1 {
		for _, promotion := range [...]int{Queen, Rook, Bishop, Knight} {
			ml[count] = makePromotion(from, to, captured, promotion)
			count++
		}
		return count
	}
	ml[count] = makeMove(from, to, Pawn, captured)
	return count + 1
}

func (p *Position) addTargets(ml []Move, count, from, piece int, targets uint64) int {
	for ; targets != 0; targets &= targets - 1 {
		var to = FirstOne(targets)
		ml[count] = makeMove(from, to, piece, p.WhatPiece(to))
		count++
	}
	return count
}

// GenerateMoves appends pseudo-legal moves to ml[:0]. The buffer must hold MaxMoves moves.
// Moves leaving the king attacked are rejected later by MakeMove.
func (p *Position) GenerateMoves(ml []Move) []Move {
	ml = ml[:MaxMoves]
	var count = 0
	var side = p.WhiteMove
	var ownPieces = p.PiecesByColor(side)
	var oppPieces = p.PiecesByColor(!side)
	var allPieces = ownPieces | oppPieces
	var kingSq = FirstOne(p.Kings & ownPieces)

	var target = ^ownPieces
	if p.Checkers != 0 {
		target = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
	}

	var ownPawns = p.Pawns & ownPieces
	var up = let(side, 8, -8)
	var startRank = let(side, Rank2, Rank7)

	if p.EpSquare != SquareNone {
		for fromBB := PawnAttacks(p.EpSquare, !side) & ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
			ml[count] = makeMove(FirstOne(fromBB), p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	for fromBB := ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		var to = from + up
		if SquareMask[to]&allPieces == 0 {
			count = addPawnMoves(ml, count, from, to, Empty)
			if Rank(from) == startRank && SquareMask[to+up]&allPieces == 0 {
				ml[count] = makeMove(from, to+up, Pawn, Empty)
				count++
			}
		}
		for toBB := PawnAttacks(from, side) & oppPieces; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			count = addPawnMoves(ml, count, from, to, p.WhatPiece(to))
		}
	}

	for fromBB := p.Knights & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		count = p.addTargets(ml, count, from, Knight, KnightAttacks[from]&target)
	}

	for fromBB := p.Bishops & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		count = p.addTargets(ml, count, from, Bishop, BishopAttacks(from, allPieces)&target)
	}

	for fromBB := p.Rooks & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		count = p.addTargets(ml, count, from, Rook, RookAttacks(from, allPieces)&target)
	}

	for fromBB := p.Queens & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		count = p.addTargets(ml, count, from, Queen, QueenAttacks(from, allPieces)&target)
	}

	count = p.addTargets(ml, count, kingSq, King, KingAttacks[kingSq]&^ownPieces)

	if p.Checkers == 0 {
		if side {
			if p.CastleRights&WhiteKingSide != 0 && allPieces&f1g1Mask == 0 &&
				!p.isAttackedBySide(SquareF1, false) {
				ml[count] = makeMove(SquareE1, SquareG1, King, Empty)
				count++
			}
			if p.CastleRights&WhiteQueenSide != 0 && allPieces&b1d1Mask == 0 &&
				!p.isAttackedBySide(SquareD1, false) {
				ml[count] = makeMove(SquareE1, SquareC1, King, Empty)
				count++
			}
		} else {
			if p.CastleRights&BlackKingSide != 0 && allPieces&f8g8Mask == 0 &&
				!p.isAttackedBySide(SquareF8, true) {
				ml[count] = makeMove(SquareE8, SquareG8, King, Empty)
				count++
			}
			if p.CastleRights&BlackQueenSide != 0 && allPieces&b8d8Mask == 0 &&
				!p.isAttackedBySide(SquareD8, true) {
				ml[count] = makeMove(SquareE8, SquareC8, King, Empty)
				count++
			}
		}
	}

	return ml[:count]
}

// GenerateLegalMoves filters GenerateMoves through MakeMove.
func (p *Position) GenerateLegalMoves(ml []Move) []Move {
	ml = p.GenerateMoves(ml)
	var child Position
	var count = 0
	for _, m := range ml {
		if p.MakeMove(m, &child) {
			ml[count] = m
			count++
		}
	}
	return ml[:count]
}

func (p *Position) HasLegalMove() bool {
	var buffer [MaxMoves]Move
	var child Position
	for _, m := range p.GenerateMoves(buffer[:]) {
		if p.MakeMove(m, &child) {
			return true
		}
	}
	return false
}

func (p *Position) LegalMoveCount() int {
	var buffer [MaxMoves]Move
	return len(p.GenerateLegalMoves(buffer[:]))
}

// IsInsufficientMaterial reports bare kings or a single minor piece on the board.
func (p *Position) IsInsufficientMaterial() bool {
	return p.Pawns|p.Rooks|p.Queens == 0 &&
		!MoreThanOne(p.Knights|p.Bishops)
}
