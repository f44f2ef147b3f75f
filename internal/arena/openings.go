package arena

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pawnstorm/pawnstorm/pkg/common"
)

//go:embed openings.txt
var openingsTxt string

// DefaultOpenings returns the built-in opening book as FENs.
func DefaultOpenings() ([]string, error) {
	return parseOpenings(strings.NewReader(openingsTxt))
}

// LoadOpenings reads an opening book from a file. An empty path selects the built-in book.
func LoadOpenings(path string) ([]string, error) {
	if path == "" {
		return DefaultOpenings()
	}
	var f, err = os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseOpenings(f)
}

func parseOpenings(r io.Reader) ([]string, error) {
	var result []string
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		var fen, err = parseOpening(line)
		if err != nil {
			return nil, err
		}
		result = append(result, fen)
	}
	return result, scanner.Err()
}

func parseOpening(opening string) (string, error) {
	if strings.Contains(opening, "/") {
		var p, err = common.NewPositionFromFEN(opening)
		if err != nil {
			return "", err
		}
		return p.String(), nil
	}
	var board, err = common.NewBoard(common.InitialPositionFen)
	if err != nil {
		return "", err
	}
	for _, lan := range strings.Fields(opening) {
		var move, err = board.ParseMove(lan)
		if err != nil {
			return "", fmt.Errorf("opening %q: %w", opening, err)
		}
		board.MakeMove(move)
	}
	return board.Position().String(), nil
}

func loadGames(
	ctx context.Context,
	cfg *Config,
	gameInfos chan<- gameInfo,
) error {
	for i := 0; i < cfg.Games; i++ {
		var info = gameInfo{
			opening:        cfg.Openings[(i/2)%len(cfg.Openings)],
			engineAIsWhite: i%2 == 0,
			gameNumber:     i + 1,
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- info:
		}
	}
	return nil
}
