// Package baseline is a weak, randomized sparring opponent for the engine.
package baseline

import (
	"context"
	"math"
	"time"

	"lukechampine.com/frand"

	"github.com/pawnstorm/pawnstorm/pkg/common"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
)

const (
	discount     = 0.9
	checkPenalty = 500
	mateScore    = 10000
)

var pieceWeights = [common.King + 1]float64{
	common.Pawn:   100,
	common.Knight: 300,
	common.Bishop: 500,
	common.Rook:   500,
	common.Queen:  900,
}

// Player searches every root move to a fixed depth in random order.
// There is no transposition table; nearer outcomes are preferred through a 0.9 per-ply discount.
type Player struct {
	Depth    int
	MoveTime time.Duration
	rng      *frand.RNG
	buffers  [][]common.Move
}

func NewPlayer(depth int, moveTime time.Duration) *Player {
	return &Player{
		Depth:    depth,
		MoveTime: moveTime,
		rng:      frand.New(),
	}
}

func (p *Player) Clear() {}

func (p *Player) Think(ctx context.Context, b *common.Board, clock engine.Clock) common.Move {
	if clock == nil {
		clock = engine.NewClock()
	}
	var s = search{player: p, ctx: ctx, board: b, clock: clock, budget: p.MoveTime.Milliseconds()}
	var bestMove = common.MoveEmpty
	var bestScore = math.Inf(-1)
	for _, m := range s.moves(0) {
		b.MakeMove(m)
		var score = -s.negamax(p.Depth, math.Inf(-1), math.Inf(1), 1)
		b.UndoMove(m)
		if score > bestScore || bestMove == common.MoveEmpty {
			bestMove, bestScore = m, score
		}
	}
	return bestMove
}

type search struct {
	player *Player
	ctx    context.Context
	board  *common.Board
	clock  engine.Clock
	budget int64
}

func (s *search) expired() bool {
	return s.clock.ElapsedMillis() > s.budget || s.ctx.Err() != nil
}

func (s *search) negamax(depth int, alpha, beta float64, height int) float64 {
	if depth == 0 || s.expired() {
		return s.evaluate()
	}
	if status := s.board.Status(); status != common.Ongoing {
		return s.evaluate()
	}
	var value = math.Inf(-1)
	for _, m := range s.moves(height) {
		s.board.MakeMove(m)
		value = math.Max(value, -discount*s.negamax(depth-1, -beta, -alpha, height+1))
		s.board.UndoMove(m)
		alpha = math.Max(alpha, value)
		if alpha >= beta {
			break
		}
	}
	return value
}

// evaluate is material from the mover's side, less a penalty for standing in check.
func (s *search) evaluate() float64 {
	var pos = s.board.Position()
	if s.board.IsInCheckmate() {
		return -mateScore
	}
	var score float64
	for piece, bb := range [...]uint64{
		common.Pawn:   pos.Pawns,
		common.Knight: pos.Knights,
		common.Bishop: pos.Bishops,
		common.Rook:   pos.Rooks,
		common.Queen:  pos.Queens,
	} {
		var own = common.PopCount(bb & pos.PiecesByColor(pos.WhiteMove))
		var opp = common.PopCount(bb & pos.PiecesByColor(!pos.WhiteMove))
		score += pieceWeights[piece] * float64(own-opp)
	}
	if pos.IsCheck() {
		score -= checkPenalty
	}
	return score
}

// moves returns the legal moves shuffled, reusing one buffer per height.
func (s *search) moves(height int) []common.Move {
	var p = s.player
	for len(p.buffers) <= height {
		p.buffers = append(p.buffers, make([]common.Move, common.MaxMoves))
	}
	var ml = s.board.GenerateLegalMoves(p.buffers[height])
	p.rng.Shuffle(len(ml), func(i, j int) {
		ml[i], ml[j] = ml[j], ml[i]
	})
	return ml
}
