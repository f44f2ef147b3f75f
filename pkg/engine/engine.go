package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	. "github.com/pawnstorm/pawnstorm/pkg/common"
)

type Evaluator interface {
	Evaluate(p *Position) int
}

// Engine is a single-threaded searcher. Its transposition table survives between moves
// of a game until Clear is called.
type Engine struct {
	Options
	Logger     zerolog.Logger
	evaluator  Evaluator
	transTable *TransTable
	orderer    *moveOrderer
	seed       uint64
}

func NewEngine(evaluator Evaluator, options Options) *Engine {
	return &Engine{
		Options:   options,
		Logger:    zerolog.Nop(),
		evaluator: evaluator,
	}
}

// Prepare allocates or resizes the table and reseeds move ordering after option changes.
func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = NewTransTable(e.Hash)
		e.Logger.Debug().
			Int("megabytes", e.Hash).
			Int("entries", e.transTable.Len()).
			Msg("transposition table allocated")
	}
	if e.orderer == nil || e.seed != e.Seed {
		e.orderer = newMoveOrderer(e.Seed)
		e.seed = e.Seed
	}
}

func (e *Engine) Clear() {
	e.Prepare()
	e.transTable.Clear()
	e.orderer = newMoveOrderer(e.Seed)
}

// Think returns the move to play in the current position, or MoveEmpty if there is none.
func (e *Engine) Think(ctx context.Context, b *Board, clock Clock) Move {
	return e.Search(ctx, SearchParams{Board: b, Clock: clock}).Move
}

// Evaluate scores the board for the side to move: mate, draw or the static evaluation.
func (e *Engine) Evaluate(b *Board) int {
	e.Prepare()
	var t = searcher{engine: e, board: b}
	return t.evaluate(0)
}

// Search runs iterative deepening until the time budget, the depth limit or a mate score ends it.
// The board is used as scratch space and is restored before returning.
func (e *Engine) Search(ctx context.Context, params SearchParams) SearchInfo {
	var start = time.Now()
	e.Prepare()

	var b = params.Board
	var clock = params.Clock
	if clock == nil {
		clock = NewClock()
	}
	var t = &searcher{
		engine: e,
		board:  b,
		tm:     newTimeManager(ctx, clock, params.Limits, b.Position(), e.MoveTime),
	}

	var rootMoves = b.LegalMoves()
	if len(rootMoves) == 0 {
		return SearchInfo{Score: t.evaluate(0), Time: time.Since(start)}
	}

	// Used when not even depth 1 completes.
	var result = SearchInfo{
		Move: e.orderer.order(rootMoves, e.ttMove(b), t.stack[0].ordered[:])[0].Move,
	}

	var maxDepth = Min(Max(e.MaxDepth, 1), maxHeight)
	if params.Limits.Depth > 0 {
		maxDepth = Min(maxDepth, params.Limits.Depth)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		t.rootBest = SearchResult{}
		var r = t.alphaBeta(-valueInfinity, valueInfinity, depth, 0)
		if t.tm.stopped {
			if result.Depth == 0 && t.rootBest.Move != MoveEmpty {
				result.Move = t.rootBest.Move
				result.Score = t.rootBest.Score
			}
			e.Logger.Debug().Int("depth", depth).Msg("iteration interrupted")
			break
		}
		result.Move = r.Move
		result.Score = r.Score
		result.Depth = depth
		result.Nodes = t.nodes
		result.Time = time.Since(start)
		result.MainLine = t.mainLine(r.Move, depth)

		e.Logger.Debug().
			Int("depth", depth).
			Int("score", r.Score).
			Str("move", r.Move.String()).
			Int64("nodes", t.nodes).
			Dur("elapsed", result.Time).
			Msg("iteration complete")
		if params.Progress != nil {
			params.Progress(result)
		}
		if !t.tm.startNextIteration(depth, r.Score) {
			break
		}
	}

	result.Nodes = t.nodes
	result.Time = time.Since(start)
	if len(result.MainLine) == 0 {
		result.MainLine = []Move{result.Move}
	}
	var stats = e.transTable.Stats()
	e.Logger.Debug().
		Str("move", result.Move.String()).
		Int("depth", result.Depth).
		Int64("tt_probes", stats.Probes).
		Int64("tt_hits", stats.Hits).
		Int64("tt_collisions", stats.Collisions).
		Msg("search finished")
	return result
}

func (e *Engine) ttMove(b *Board) Move {
	if entry, ok := e.transTable.Probe(b.Hash()); ok {
		return entry.Move
	}
	return MoveEmpty
}
