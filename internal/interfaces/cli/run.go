// Package cli implements the elo command: replay openfootball season files
// and print standings, fixtures, tables or odds.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/riskibarqy/league-elo/external/openfootball"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-elo/internal/platform/export"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
	"github.com/riskibarqy/league-elo/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Main runs the command and returns its exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "elo:", err)
		fmt.Fprintln(stderr, "usage: elo [flags] FILE...")
		return ExitUsage
	}

	logger := logging.New(stderr, opts.LogLevel, logging.EncodingConsole)
	defer func() { _ = logger.Sync() }()

	if err := Run(ctx, opts, stdout, logger); err != nil {
		logger.Error("elo failed", "error", err)
		return ExitError
	}
	return ExitOK
}

// Run writes one block per season file, in argument order.
func Run(ctx context.Context, opts Options, stdout io.Writer, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}

	seasons, err := loadSeasons(ctx, opts.Files, opts.Concurrency)
	if err != nil {
		return err
	}
	logger.Debug("seasons loaded", "count", len(seasons))

	repo := memory.NewSeasonRepository(seasons)
	r := &runner{
		opts:            opts,
		logger:          logger,
		seasonService:   usecase.NewSeasonService(repo),
		standingService: usecase.NewStandingService(repo, nil),
		oddsService:     usecase.NewOddsService(repo, opts.Concurrency),
	}

	out := bufio.NewWriter(stdout)
	for i, item := range seasons {
		if i > 0 && opts.Format == export.FormatYAML {
			if _, err := io.WriteString(out, "---\n"); err != nil {
				return err
			}
		}
		if err := r.write(ctx, out, item.ID); err != nil {
			return err
		}
	}
	return out.Flush()
}

type loadedSeason struct {
	index  int
	season season.Season
}

// loadSeasons parses files concurrently. Each season is keyed by its path
// so two files with the same name stay apart.
func loadSeasons(ctx context.Context, files []string, concurrency int) ([]season.Season, error) {
	p := pool.NewWithResults[loadedSeason]().
		WithContext(ctx).
		WithFirstError().
		WithCancelOnError().
		WithMaxGoroutines(max(concurrency, 1))

	for i, path := range files {
		p.Go(func(ctx context.Context) (loadedSeason, error) {
			if err := ctx.Err(); err != nil {
				return loadedSeason{}, err
			}
			item, err := openfootball.ParseFile(path)
			if err != nil {
				return loadedSeason{}, err
			}
			item.ID = path
			return loadedSeason{index: i, season: item}, nil
		})
	}

	loaded, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].index < loaded[j].index
	})
	out := make([]season.Season, 0, len(loaded))
	for _, item := range loaded {
		out = append(out, item.season)
	}
	return out, nil
}

type runner struct {
	opts            Options
	logger          *logging.Logger
	seasonService   *usecase.SeasonService
	standingService *usecase.StandingService
	oddsService     *usecase.OddsService
}

func (r *runner) write(ctx context.Context, w io.Writer, seasonID string) error {
	switch r.opts.Mode {
	case ModeFixtures:
		var round *uint
		if r.opts.HasRound {
			round = &r.opts.Round
		}
		items, err := r.seasonService.ListFixtures(ctx, seasonID, round)
		if err != nil {
			return err
		}
		return export.Write(w, r.opts.Format, export.FixtureRows(items))
	case ModeTable:
		rows, err := r.standingService.Table(ctx, seasonID, r.opts.Params)
		if err != nil {
			return err
		}
		return export.Write(w, r.opts.Format, export.TableRows(rows))
	case ModeOdds:
		return r.writeOdds(ctx, w, seasonID)
	default:
		items, err := r.standingService.Replay(ctx, seasonID, r.opts.Params)
		if err != nil {
			return err
		}
		return export.Write(w, r.opts.Format, export.StandingRows(items))
	}
}

// writeOdds falls back to the next unplayed round. A finished season
// prints no rows.
func (r *runner) writeOdds(ctx context.Context, w io.Writer, seasonID string) error {
	if r.opts.HasRound {
		items, err := r.oddsService.RoundOdds(ctx, seasonID, r.opts.Round, r.opts.Params)
		if err != nil {
			return err
		}
		return export.Write(w, r.opts.Format, export.OddsRows(items))
	}

	next, err := r.oddsService.NextRoundOdds(ctx, seasonID, r.opts.Params)
	if errors.Is(err, usecase.ErrNotFound) {
		r.logger.Warn("season has no unplayed round", "season", seasonID)
		return export.Write[export.OddsRow](w, r.opts.Format, nil)
	}
	if err != nil {
		return err
	}
	return export.Write(w, r.opts.Format, export.OddsRows(next.Odds))
}
