package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pawnstorm/pawnstorm/pkg/common"
	"github.com/pawnstorm/pawnstorm/pkg/engine"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) engine.SearchInfo
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	board        *common.Board
	in           io.Reader
	out          io.Writer
	thinking     bool
	engineOutput chan engine.SearchInfo
	lastInfo     engine.SearchInfo
	cancel       context.CancelFunc
}

func New(name, author, version string, eng Engine, options []Option) *Protocol {
	var board, err = common.NewBoard(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:    name,
		author:  author,
		version: version,
		engine:  eng,
		options: options,
		board:   board,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Run serves commands until quit or end of input. A running search is stopped
// and its best move reported before Run returns.
func (uci *Protocol) Run(logger zerolog.Logger) {
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(uci.in, commands)
	}()

	for {
		select {
		case si, ok := <-uci.engineOutput:
			if ok {
				uci.onSearchInfo(si)
			} else {
				uci.onSearchDone()
			}
		case commandLine, ok := <-commands:
			if !ok {
				if uci.thinking {
					uci.cancel()
					uci.waitSearch()
				}
				return
			}
			var err = uci.handle(commandLine)
			if err != nil {
				logger.Warn().Err(err).Str("command", commandLine).Msg("uci command failed")
			}
		}
	}
}

func readCommands(in io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if uci.thinking {
		if commandName == "stop" {
			uci.cancel()
			return nil
		}
		if commandName == "isready" {
			return uci.isReadyCommand(fields)
		}
		return errors.New("search still running")
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "stop":
		return nil
	}

	if h == nil {
		return fmt.Errorf("unknown command %q", commandName)
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.out, "id name %s %s\n", uci.name, uci.version)
	fmt.Fprintf(uci.out, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.out, option.UciString())
	}
	fmt.Fprintln(uci.out, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" {
		return errors.New("invalid setoption arguments")
	}
	var valueIndex = findIndexString(fields, "value")
	if valueIndex < 2 || valueIndex+1 >= len(fields) {
		return errors.New("invalid setoption arguments")
	}
	var name = strings.Join(fields[1:valueIndex], " ")
	var value = strings.Join(fields[valueIndex+1:], " ")
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			return option.Set(value)
		}
	}
	return fmt.Errorf("unhandled option %q", name)
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	if !uci.thinking {
		uci.engine.Prepare()
	}
	fmt.Fprintln(uci.out, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("position: missing arguments")
	}
	var fen string
	var movesIndex = findIndexString(fields, "moves")
	switch fields[0] {
	case "startpos":
		fen = common.InitialPositionFen
	case "fen":
		if movesIndex == -1 {
			fen = strings.Join(fields[1:], " ")
		} else {
			fen = strings.Join(fields[1:movesIndex], " ")
		}
	default:
		return errors.New("unknown position command")
	}
	var board, err = common.NewBoard(fen)
	if err != nil {
		return err
	}
	if movesIndex >= 0 {
		for _, smove := range fields[movesIndex+1:] {
			var move, err = board.ParseMove(smove)
			if err != nil {
				return err
			}
			board.MakeMove(move)
		}
	}
	uci.board = board
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits, err = parseLimits(fields)
	if err != nil {
		return err
	}
	var ctx, cancel = context.WithCancel(context.Background())
	var board = uci.board.Clone()
	var clock = engine.NewClock()
	var output = make(chan engine.SearchInfo, 3)
	uci.cancel = cancel
	uci.thinking = true
	uci.engineOutput = output
	go func() {
		defer cancel()
		var searchResult = uci.engine.Search(ctx, engine.SearchParams{
			Board:  board,
			Clock:  clock,
			Limits: limits,
			Progress: func(si engine.SearchInfo) {
				select {
				case output <- si:
				default:
				}
			},
		})
		output <- searchResult
		close(output)
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

// waitSearch drains the running search and reports its result.
func (uci *Protocol) waitSearch() {
	for si := range uci.engineOutput {
		uci.onSearchInfo(si)
	}
	uci.onSearchDone()
}

func (uci *Protocol) onSearchInfo(si engine.SearchInfo) {
	fmt.Fprintln(uci.out, searchInfoToUci(si))
	uci.lastInfo = si
}

func (uci *Protocol) onSearchDone() {
	if uci.lastInfo.Move != common.MoveEmpty {
		fmt.Fprintf(uci.out, "bestmove %v\n", uci.lastInfo.Move)
	} else {
		fmt.Fprintln(uci.out, "bestmove 0000")
	}
	uci.thinking = false
	uci.cancel = nil
	uci.engineOutput = nil
	uci.lastInfo = engine.SearchInfo{}
}

func searchInfoToUci(si engine.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, si.UciScore())
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		sb.WriteString(" pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result engine.LimitsType, err error) {
	var intArg = func(i int) (int, error) {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("go: missing value for %v", args[i])
		}
		return strconv.Atoi(args[i+1])
	}
	for i := 0; i < len(args); i++ {
		var target *int
		switch args[i] {
		case "ponder":
			result.Ponder = true
		case "infinite":
			result.Infinite = true
		case "wtime":
			target = &result.WhiteTime
		case "btime":
			target = &result.BlackTime
		case "winc":
			target = &result.WhiteIncrement
		case "binc":
			target = &result.BlackIncrement
		case "movestogo":
			target = &result.MovesToGo
		case "depth":
			target = &result.Depth
		case "movetime":
			target = &result.MoveTime
		}
		if target != nil {
			if *target, err = intArg(i); err != nil {
				return engine.LimitsType{}, err
			}
			i++
		}
	}
	return result, nil
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
