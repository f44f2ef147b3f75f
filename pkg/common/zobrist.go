package common

import (
	"math"

	"lukechampine.com/frand"
)

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [2][King + 1][64]uint64
)

// zobristSeed fixes the keys so hashes are stable across runs and processes.
var zobristSeed = [32]byte{'p', 'a', 'w', 'n', 's', 't', 'o', 'r', 'm', '-', 'z', 'o', 'b', 'r', 'i', 's', 't'}

func PieceSquareKey(piece int, side bool, square int) uint64 {
	return pieceSquareKey[let(side, 1, 0)][piece][square]
}

func (p *Position) computeKey() uint64 {
	var result = uint64(0)
	if p.WhiteMove {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for occ := p.White | p.Black; occ != 0; occ &= occ - 1 {
		var sq = FirstOne(occ)
		var piece, side = p.GetPieceTypeAndSide(sq)
		result ^= PieceSquareKey(piece, side, sq)
	}
	return result
}

func initKeys() {
	var rng = frand.NewCustom(zobristSeed[:], 1024, 12)
	var next = func() uint64 {
		return rng.Uint64n(math.MaxUint64)
	}

	sideKey = next()
	for i := range enpassantKey {
		enpassantKey[i] = next()
	}
	for side := range pieceSquareKey {
		for piece := Pawn; piece <= King; piece++ {
			for sq := range pieceSquareKey[side][piece] {
				pieceSquareKey[side][piece][sq] = next()
			}
		}
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = next()
	}
	for i := range castlingKey {
		for j := range castle {
			if i&(1<<uint(j)) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func init() {
	initKeys()
}
