package engine

import (
	"encoding/binary"

	"lukechampine.com/frand"

	. "github.com/pawnstorm/pawnstorm/pkg/common"
)

const (
	sortKeyPreferred = 1000
	tieBreakBits     = 16
)

var sortPieceValues = [...]int{Empty: 0, Pawn: 1, Knight: 2, Bishop: 3, Rook: 4, Queen: 5, King: 6}

// mvvlva ranks captures by victim first, then by the cheapest attacker.
// Promotions count as capturing the promoted piece. Quiet moves score 0.
func mvvlva(move Move) int {
	if move.CapturedPiece() == Empty && move.Promotion() == Empty {
		return 0
	}
	return 10*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

// moveOrderer breaks ties between equally ranked moves with its own seeded generator.
type moveOrderer struct {
	rng *frand.RNG
}

func newMoveOrderer(seed uint64) *moveOrderer {
	if seed == 0 {
		return &moveOrderer{rng: frand.New()}
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &moveOrderer{rng: frand.NewCustom(key[:], 1024, 12)}
}

// order ranks ml into buffer: preferred first, then captures by mvvlva, then quiet moves.
func (mo *moveOrderer) order(ml []Move, preferred Move, buffer []OrderedMove) []OrderedMove {
	var result = buffer[:len(ml)]
	for i, m := range ml {
		var score int
		if m == preferred {
			score = sortKeyPreferred
		} else {
			score = mvvlva(m)
		}
		var noise = int(mo.rng.Uint64n(1 << tieBreakBits))
		result[i] = OrderedMove{Move: m, Key: int32(score<<tieBreakBits | noise)}
	}
	sortMoves(result)
	return result
}

func sortMoves(moves []OrderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}
