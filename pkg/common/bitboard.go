package common

import "math/bits"

const (
	fileAMask = 0x0101010101010101
	fileHMask = fileAMask << 7
)

// Ray directions. The first four walk towards higher square indexes.
const (
	dirNorth = iota
	dirEast
	dirNorthEast
	dirNorthWest
	dirSouth
	dirWest
	dirSouthEast
	dirSouthWest
)

var (
	SquareMask       [64]uint64
	KnightAttacks    [64]uint64
	KingAttacks      [64]uint64
	whitePawnAttacks [64]uint64
	blackPawnAttacks [64]uint64
	rays             [8][64]uint64
	betweenMask      [64][64]uint64
)

var shifts = [8]func(uint64) uint64{
	dirNorth:     func(b uint64) uint64 { return b << 8 },
	dirEast:      func(b uint64) uint64 { return (b &^ fileHMask) << 1 },
	dirNorthEast: func(b uint64) uint64 { return (b &^ fileHMask) << 9 },
	dirNorthWest: func(b uint64) uint64 { return (b &^ fileAMask) << 7 },
	dirSouth:     func(b uint64) uint64 { return b >> 8 },
	dirWest:      func(b uint64) uint64 { return (b &^ fileAMask) >> 1 },
	dirSouthEast: func(b uint64) uint64 { return (b &^ fileHMask) >> 7 },
	dirSouthWest: func(b uint64) uint64 { return (b &^ fileAMask) >> 9 },
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func lastOne(b uint64) int {
	return 63 - bits.LeadingZeros64(b)
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func MoreThanOne(b uint64) bool {
	return b&(b-1) != 0
}

func PawnAttacks(sq int, side bool) uint64 {
	if side {
		return whitePawnAttacks[sq]
	}
	return blackPawnAttacks[sq]
}

// slide returns the squares reachable along one ray, stopping on (and including) the first blocker.
func slide(sq int, occ uint64, dir int) uint64 {
	var attacks = rays[dir][sq]
	var blockers = attacks & occ
	if blockers != 0 {
		var stop int
		if dir < dirSouth {
			stop = FirstOne(blockers)
		} else {
			stop = lastOne(blockers)
		}
		attacks ^= rays[dir][stop]
	}
	return attacks
}

func RookAttacks(sq int, occ uint64) uint64 {
	return slide(sq, occ, dirNorth) | slide(sq, occ, dirSouth) |
		slide(sq, occ, dirEast) | slide(sq, occ, dirWest)
}

func BishopAttacks(sq int, occ uint64) uint64 {
	return slide(sq, occ, dirNorthEast) | slide(sq, occ, dirNorthWest) |
		slide(sq, occ, dirSouthEast) | slide(sq, occ, dirSouthWest)
}

func QueenAttacks(sq int, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

func init() {
	for sq := range SquareMask {
		SquareMask[sq] = uint64(1) << uint(sq)
	}
	for sq := 0; sq < 64; sq++ {
		var b = SquareMask[sq]
		var n, e, s, w = shifts[dirNorth], shifts[dirEast], shifts[dirSouth], shifts[dirWest]

		KingAttacks[sq] = n(b) | s(b) | e(b) | w(b) |
			n(e(b)) | n(w(b)) | s(e(b)) | s(w(b))
		KnightAttacks[sq] = n(n(e(b))) | n(n(w(b))) | s(s(e(b))) | s(s(w(b))) |
			e(e(n(b))) | e(e(s(b))) | w(w(n(b))) | w(w(s(b)))
		whitePawnAttacks[sq] = shifts[dirNorthEast](b) | shifts[dirNorthWest](b)
		blackPawnAttacks[sq] = shifts[dirSouthEast](b) | shifts[dirSouthWest](b)

		for dir, shift := range shifts {
			var path uint64
			for x := shift(b); x != 0; x = shift(x) {
				betweenMask[sq][FirstOne(x)] = path
				path |= x
			}
			rays[dir][sq] = path
		}
	}
}
