package common

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const MaxMoves = 256

const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const SquareNone = -1

// Squares used by castling and promotion code. Others are built with MakeSquare.
const (
	SquareA1 = 0
	SquareB1 = 1
	SquareC1 = 2
	SquareD1 = 3
	SquareE1 = 4
	SquareF1 = 5
	SquareG1 = 6
	SquareH1 = 7
	SquareA8 = 56
	SquareB8 = 57
	SquareC8 = 58
	SquareD8 = 59
	SquareE8 = 60
	SquareF8 = 61
	SquareG8 = 62
	SquareH8 = 63
)

// Position is an immutable snapshot of a chess game state.
// New positions are produced by copy-make (MakeMove writes into a caller-owned result).
type Position struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings, White, Black, Checkers uint64
	WhiteMove                                                             bool
	CastleRights, Rule50, EpSquare                                        int
	Key                                                                   uint64
	LastMove                                                              Move
}

type OrderedMove struct {
	Move Move
	Key  int32
}
