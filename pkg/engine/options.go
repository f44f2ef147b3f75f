package engine

import "time"

type Options struct {
	Hash     int // megabytes
	MoveTime time.Duration
	MaxDepth int
	Seed     uint64 // 0 seeds move ordering from the OS
}

func NewOptions() Options {
	return Options{
		Hash:     64,
		MoveTime: 500 * time.Millisecond,
		MaxDepth: 100,
	}
}
