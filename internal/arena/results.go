package arena

import (
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Summary struct {
	Games           int            `yaml:"games"`
	Wins            int            `yaml:"wins"`
	Losses          int            `yaml:"losses"`
	Draws           int            `yaml:"draws"`
	WinningFraction float64        `yaml:"winning_fraction"`
	EloDifference   float64        `yaml:"elo_difference"`
	LOS             float64        `yaml:"los"`
	Terminations    map[string]int `yaml:"terminations"`
}

// Summarize scores the records from player A's side.
func Summarize(records []GameRecord) Summary {
	var wins = lo.CountBy(records, func(r GameRecord) bool { return r.pointsA() == 1 })
	var draws = lo.CountBy(records, func(r GameRecord) bool { return r.pointsA() == 0.5 })
	var summary = Summary{
		Games:  len(records),
		Wins:   wins,
		Draws:  draws,
		Losses: len(records) - wins - draws,
		Terminations: lo.CountValues(lo.Map(records, func(r GameRecord, _ int) string {
			return r.Termination
		})),
	}
	if summary.Games != 0 {
		summary.WinningFraction, summary.EloDifference, summary.LOS = computeStat(wins, summary.Losses, draws)
	}
	return summary
}

func (s Summary) String() string {
	return fmt.Sprintf("%v - %v - %v [%.3f] elo %.1f los %.1f%%",
		s.Wins, s.Losses, s.Draws, s.WinningFraction, s.EloDifference, s.LOS*100)
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) (winningFraction, eloDifference, los float64) {
	var games = wins + losses + draws
	winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	los = 0.5
	if wins+losses != 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return
}

type resultsFile struct {
	Summary Summary      `yaml:"summary"`
	Games   []GameRecord `yaml:"games"`
}

// WriteRecords writes the summary and every game as YAML, optionally zstd-compressed.
func WriteRecords(w io.Writer, records []GameRecord, compress bool) (err error) {
	if compress {
		var enc *zstd.Encoder
		enc, err = zstd.NewWriter(w)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := enc.Close(); err == nil {
				err = closeErr
			}
		}()
		w = enc
	}
	// A sweep has an infinite Elo difference; YAML keeps it as .inf.
	var yamlEnc = yaml.NewEncoder(w)
	if err = yamlEnc.Encode(resultsFile{Summary: Summarize(records), Games: records}); err != nil {
		return err
	}
	return yamlEnc.Close()
}

// ReadRecords reverses WriteRecords.
func ReadRecords(r io.Reader, compressed bool) ([]GameRecord, Summary, error) {
	if compressed {
		var dec, err = zstd.NewReader(r)
		if err != nil {
			return nil, Summary{}, err
		}
		defer dec.Close()
		r = dec
	}
	var file resultsFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, Summary{}, err
	}
	return file.Games, file.Summary, nil
}
