package uci

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

var errOutOfRange = errors.New("argument out of range")

type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v",
		opt.Name, *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errOutOfRange
	}
	*opt.Value = v
	return nil
}

// MillisecondsOption exposes a duration as a spin option in milliseconds.
type MillisecondsOption struct {
	Name  string
	Min   int
	Max   int
	Value *time.Duration
}

func (opt *MillisecondsOption) UciName() string {
	return opt.Name
}

func (opt *MillisecondsOption) UciString() string {
	return fmt.Sprintf("option name %v type spin default %v min %v max %v",
		opt.Name, opt.Value.Milliseconds(), opt.Min, opt.Max)
}

func (opt *MillisecondsOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errOutOfRange
	}
	*opt.Value = time.Duration(v) * time.Millisecond
	return nil
}

// SeedOption is a string option holding an unsigned seed; 0 means unseeded.
type SeedOption struct {
	Name  string
	Value *uint64
}

func (opt *SeedOption) UciName() string {
	return opt.Name
}

func (opt *SeedOption) UciString() string {
	return fmt.Sprintf("option name %v type string default %v", opt.Name, *opt.Value)
}

func (opt *SeedOption) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}
