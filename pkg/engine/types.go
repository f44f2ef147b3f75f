package engine

import (
	"fmt"
	"time"

	. "github.com/pawnstorm/pawnstorm/pkg/common"
)

type LimitsType struct {
	Ponder         bool
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
}

type SearchParams struct {
	Board    *Board
	Clock    Clock
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type UciScore struct {
	Centipawns int
	Mate       int
}

func (s UciScore) String() string {
	if s.Mate != 0 {
		return fmt.Sprintf("mate %v", s.Mate)
	}
	return fmt.Sprintf("cp %v", s.Centipawns)
}

type SearchInfo struct {
	Move     Move
	Score    int
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []Move
}

func (si SearchInfo) UciScore() UciScore {
	return newUciScore(si.Score)
}

// SearchResult is what one node of the search returns. Move is MoveEmpty at leaves.
type SearchResult struct {
	Score int
	Move  Move
}
