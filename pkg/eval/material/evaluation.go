package eval

import (
	"github.com/pawnstorm/pawnstorm/pkg/common"
)

// PieceValues are indexed by piece type. Kings are not counted.
var PieceValues = [common.King + 1]int{
	common.Pawn:   100,
	common.Knight: 300,
	common.Bishop: 300,
	common.Rook:   500,
	common.Queen:  900,
}

// EvaluationService scores a position from the side to move's point of view.
// It does not detect mate or draws; the search handles terminal positions.
type EvaluationService struct {
	MobilityWeight int
	CheckPenalty   int
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{MobilityWeight: 2}
}

func (e *EvaluationService) Evaluate(p *common.Position) int {
	var eval = Material(p)
	if !p.WhiteMove {
		eval = -eval
	}
	if p.IsCheck() {
		return eval - e.CheckPenalty
	}
	if e.MobilityWeight != 0 {
		var opponent common.Position
		p.MakeNullMove(&opponent)
		eval += e.MobilityWeight * (p.LegalMoveCount() - opponent.LegalMoveCount())
	}
	return eval
}

// Material is white's material minus black's.
func Material(p *common.Position) int {
	var result = 0
	for piece, bb := range [...]uint64{
		common.Pawn:   p.Pawns,
		common.Knight: p.Knights,
		common.Bishop: p.Bishops,
		common.Rook:   p.Rooks,
		common.Queen:  p.Queens,
	} {
		result += PieceValues[piece] * (common.PopCount(bb&p.White) - common.PopCount(bb&p.Black))
	}
	return result
}
