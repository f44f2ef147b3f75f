package engine

import (
	. "github.com/pawnstorm/pawnstorm/pkg/common"
)

// searcher holds the state of one search call. It is not shared between goroutines.
type searcher struct {
	engine   *Engine
	board    *Board
	tm       *timeManager
	nodes    int64
	rootBest SearchResult
	stack    [stackSize]struct {
		legal   [MaxMoves]Move
		ordered [MaxMoves]OrderedMove
	}
}

// evaluate scores the board for the side to move, detecting mate and draws first.
func (t *searcher) evaluate(height int) int {
	switch t.board.Status() {
	case Checkmate:
		return lossIn(height)
	case Ongoing:
		// Static scores stay clear of the mate range, which the TT adjusts by distance.
		var v = t.engine.evaluator.Evaluate(t.board.Position())
		return Max(valueLoss+1, Min(valueWin-1, v))
	default:
		return valueDraw
	}
}

// alphaBeta is a fail-soft negamax search. After a timeout it returns a zero result,
// which callers must discard by checking t.tm.stopped.
func (t *searcher) alphaBeta(alpha, beta, depth, height int) SearchResult {
	if t.tm.IsDone() {
		return SearchResult{}
	}
	t.nodes++

	var rootNode = height == 0
	var b = t.board

	if !rootNode && b.IsRepeatedPosition() {
		return SearchResult{Score: valueRepetition}
	}

	var tt = t.engine.transTable
	var key = b.Hash()
	var ttMove = MoveEmpty
	if entry, ok := tt.Probe(key); ok {
		ttMove = entry.Move
		if !rootNode && int(entry.Depth) >= depth {
			var ttScore = valueFromTT(int(entry.Score), height)
			switch entry.Bound {
			case BoundExact:
				return SearchResult{Score: ttScore, Move: entry.Move}
			case BoundLower:
				alpha = Max(alpha, ttScore)
			case BoundUpper:
				beta = Min(beta, ttScore)
			}
			if alpha >= beta {
				return SearchResult{Score: ttScore, Move: entry.Move}
			}
		}
	}

	if depth <= 0 || height >= maxHeight {
		return SearchResult{Score: t.evaluate(height)}
	}

	var ml = b.GenerateLegalMoves(t.stack[height].legal[:])
	if len(ml) == 0 || (!rootNode && b.IsDraw()) {
		return SearchResult{Score: t.evaluate(height)}
	}

	// Bounds are recorded against the window after the TT tightened it.
	var originalAlpha = alpha
	var best = SearchResult{Score: -valueInfinity}
	var ordered = t.engine.orderer.order(ml, ttMove, t.stack[height].ordered[:])
	for i := range ordered {
		var move = ordered[i].Move
		var score = t.searchMove(move, alpha, beta, depth, height)
		if t.tm.stopped {
			return SearchResult{}
		}
		if score > best.Score {
			best = SearchResult{Score: score, Move: move}
			if rootNode {
				t.rootBest = best
			}
		}
		alpha = Max(alpha, best.Score)
		if alpha >= beta {
			break
		}
	}

	var bound Bound
	switch {
	case best.Score <= originalAlpha:
		bound = BoundUpper
	case best.Score >= beta:
		bound = BoundLower
	default:
		bound = BoundExact
	}
	tt.Store(key, depth, valueToTT(best.Score, height), bound, best.Move)
	return best
}

// searchMove plays move, searches the child with the negated window and takes the move back.
func (t *searcher) searchMove(move Move, alpha, beta, depth, height int) int {
	t.board.MakeMove(move)
	defer t.board.UndoMove(move)
	return -t.alphaBeta(-beta, -alpha, depth-1, height+1).Score
}

// mainLine follows best moves through the TT, stopping at misses, illegal moves and repetitions.
func (t *searcher) mainLine(first Move, maxLength int) []Move {
	var b = t.board
	var line = []Move{first}
	b.MakeMove(first)
	for len(line) < maxLength {
		var entry, ok = t.engine.transTable.Probe(b.Hash())
		if !ok || entry.Move == MoveEmpty || b.IsRepeatedPosition() ||
			!containsMove(b.GenerateLegalMoves(t.stack[0].legal[:]), entry.Move) {
			break
		}
		b.MakeMove(entry.Move)
		line = append(line, entry.Move)
	}
	for i := len(line) - 1; i >= 0; i-- {
		b.UndoMove(line[i])
	}
	return line
}

func containsMove(ml []Move, move Move) bool {
	for _, m := range ml {
		if m == move {
			return true
		}
	}
	return false
}
