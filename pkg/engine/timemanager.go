package engine

import (
	"context"
	"time"

	. "github.com/pawnstorm/pawnstorm/pkg/common"
)

// Clock reports how long the side to move has been thinking.
type Clock interface {
	ElapsedMillis() int64
}

type turnClock struct {
	start time.Time
}

// NewClock starts a clock for the current turn.
func NewClock() Clock {
	return &turnClock{start: time.Now()}
}

func (c *turnClock) ElapsedMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// timeManager is polled at every node. Once it reports done it stays done.
type timeManager struct {
	ctx       context.Context
	clock     Clock
	limits    LimitsType
	softLimit int64
	hardLimit int64
	polls     int
	stopped   bool
}

func newTimeManager(ctx context.Context, clock Clock, limits LimitsType,
	p *Position, defaultMoveTime time.Duration) *timeManager {

	var tm = &timeManager{
		ctx:    ctx,
		clock:  clock,
		limits: limits,
	}

	if limits.MoveTime > 0 {
		tm.hardLimit = int64(limits.MoveTime)
	} else if limits.WhiteTime > 0 || limits.BlackTime > 0 {
		var main, inc time.Duration
		if p.WhiteMove {
			main = time.Duration(limits.WhiteTime) * time.Millisecond
			inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
		} else {
			main = time.Duration(limits.BlackTime) * time.Millisecond
			inc = time.Duration(limits.BlackIncrement) * time.Millisecond
		}
		var soft, hard = calcLimits(main, inc, limits.MovesToGo)
		tm.softLimit, tm.hardLimit = soft.Milliseconds(), hard.Milliseconds()
	} else if !limits.Infinite && limits.Depth == 0 {
		tm.hardLimit = defaultMoveTime.Milliseconds()
	}
	return tm
}

func (tm *timeManager) IsDone() bool {
	if tm.stopped {
		return true
	}
	if tm.hardLimit > 0 && tm.clock.ElapsedMillis() >= tm.hardLimit {
		tm.stopped = true
		return true
	}
	tm.polls++
	if tm.polls&255 == 0 && tm.ctx.Err() != nil {
		tm.stopped = true
	}
	return tm.stopped
}

// startNextIteration decides whether another depth is worth starting.
func (tm *timeManager) startNextIteration(depth, score int) bool {
	if tm.IsDone() || tm.ctx.Err() != nil {
		return false
	}
	if tm.limits.Infinite {
		return true
	}
	if tm.limits.Depth != 0 && depth >= tm.limits.Depth {
		return false
	}
	if isMateScore(score) {
		return false
	}
	if tm.softLimit != 0 && tm.clock.ElapsedMillis() >= tm.softLimit {
		return false
	}
	return true
}

func calcLimits(main, inc time.Duration, moves int) (soft, hard time.Duration) {
	const (
		DefaultMovesToGo = 40
		MoveOverhead     = 300 * time.Millisecond
		MinTimeLimit     = 1 * time.Millisecond
	)

	main -= MoveOverhead
	if main < MinTimeLimit {
		main = MinTimeLimit
	}

	if moves == 0 {
		var ideal = main/35 + inc/2
		soft = ideal * 7 / 10
		hard = ideal * 21 / 10
	} else {
		moves = Min(moves, DefaultMovesToGo)
		soft = (main/time.Duration(moves+1) + inc) * 7 / 10
		hard = (main/time.Duration(moves+1) + inc) * 21 / 10
	}

	hard = limitDuration(hard, MinTimeLimit, main)
	soft = limitDuration(soft, MinTimeLimit, main)
	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
