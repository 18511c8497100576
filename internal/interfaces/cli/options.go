package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/platform/export"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
)

type Mode string

const (
	ModeStandings Mode = "standings"
	ModeFixtures  Mode = "fixtures"
	ModeTable     Mode = "table"
	ModeOdds      Mode = "odds"
)

const defaultConcurrency = 4

var ErrUsage = errors.New("usage error")

type Options struct {
	Params      elo.Params
	Mode        Mode
	Round       uint
	HasRound    bool
	Format      export.Format
	Concurrency int
	LogLevel    logging.Level
	Files       []string
}

// ParseArgs reads flags and the season files that follow them. Usage
// problems wrap ErrUsage; -h returns flag.ErrHelp.
func ParseArgs(args []string, stderr io.Writer) (Options, error) {
	fs := flag.NewFlagSet("elo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: elo [flags] FILE...")
		fs.PrintDefaults()
	}

	defaults := elo.DefaultParams()
	k := fs.Float64("k", defaults.K, "sensitivity of the Elo rating")
	var scoreFactor float64
	fs.Float64Var(&scoreFactor, "score-factor", defaults.ScoreFactor, "how much the goal difference shifts the rating")
	fs.Float64Var(&scoreFactor, "s", defaults.ScoreFactor, "shorthand for -score-factor")
	initialRating := fs.Int("initial-rating", defaults.InitialRating, "rating every team starts the season with")
	mode := fs.String("mode", string(ModeStandings), "output: standings, fixtures, table or odds")
	round := fs.Int("round", -1, "round for -mode odds; defaults to the next unplayed round")
	format := fs.String("format", string(export.FormatCSV), "output format: csv, json or yaml")
	concurrency := fs.Int("concurrency", defaultConcurrency, "season files parsed at once")
	logLevel := fs.String("log-level", "warn", "stderr log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Options{}, err
		}
		return Options{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	opts := Options{
		Params: elo.Params{
			InitialRating: *initialRating,
			K:             *k,
			ScoreFactor:   scoreFactor,
		},
		Mode:        Mode(strings.ToLower(strings.TrimSpace(*mode))),
		Concurrency: *concurrency,
		LogLevel:    logging.ParseLevel(*logLevel),
		Files:       fs.Args(),
	}

	if err := opts.Params.Validate(); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	switch opts.Mode {
	case ModeStandings, ModeFixtures, ModeTable, ModeOdds:
	default:
		return Options{}, fmt.Errorf("%w: unknown mode %q", ErrUsage, *mode)
	}
	if *round >= 0 {
		opts.Round = uint(*round)
		opts.HasRound = true
	}
	if opts.HasRound && opts.Mode != ModeOdds && opts.Mode != ModeFixtures {
		return Options{}, fmt.Errorf("%w: -round applies to -mode odds or fixtures", ErrUsage)
	}
	outFormat, err := export.ParseFormat(*format)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	opts.Format = outFormat
	if opts.Concurrency < 1 {
		return Options{}, fmt.Errorf("%w: -concurrency must be >= 1", ErrUsage)
	}
	if len(opts.Files) == 0 {
		return Options{}, fmt.Errorf("%w: at least one season file is required", ErrUsage)
	}

	return opts, nil
}
