package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/domain/odds"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"go.opentelemetry.io/otel/attribute"
)

const defaultOddsWorkers = 4

type OddsService struct {
	seasonRepo season.Repository
	workers    int
}

// RoundOdds is the odds of one round.
type RoundOdds struct {
	Round uint
	Odds  []odds.Odds
}

func NewOddsService(seasonRepo season.Repository, workers int) *OddsService {
	if workers < 1 {
		workers = defaultOddsWorkers
	}
	return &OddsService{
		seasonRepo: seasonRepo,
		workers:    workers,
	}
}

// RoundOdds evaluates every fixture of round against the ratings reached
// before it. A round without fixtures yields an empty list.
func (s *OddsService) RoundOdds(ctx context.Context, seasonID string, round uint, params elo.Params) ([]odds.Odds, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.RoundOdds",
		attribute.String("season.id", seasonID),
		attribute.Int("round", int(round)),
	)
	defer span.End()

	if err := validateParams(params); err != nil {
		return nil, err
	}

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	return roundOdds(item, round, params)
}

// NextRoundOdds picks the lowest round with an unplayed fixture.
func (s *OddsService) NextRoundOdds(ctx context.Context, seasonID string, params elo.Params) (RoundOdds, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.NextRoundOdds", attribute.String("season.id", seasonID))
	defer span.End()

	if err := validateParams(params); err != nil {
		return RoundOdds{}, err
	}

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return RoundOdds{}, err
	}

	round, ok := item.NextRound()
	if !ok {
		return RoundOdds{}, fmt.Errorf("%w: season %s has no unplayed round", ErrNotFound, item.ID)
	}

	items, err := roundOdds(item, round, params)
	if err != nil {
		return RoundOdds{}, err
	}
	return RoundOdds{Round: round, Odds: items}, nil
}

// OddsForRounds computes several rounds concurrently. Each round runs its own
// replay; results follow the order of rounds.
func (s *OddsService) OddsForRounds(ctx context.Context, seasonID string, rounds []uint, params elo.Params) ([]RoundOdds, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.OddsForRounds",
		attribute.String("season.id", seasonID),
		attribute.Int("rounds", len(rounds)),
	)
	defer span.End()

	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w: at least one round is required", ErrInvalidInput)
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	workerCount := min(s.workers, len(rounds))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]RoundOdds, len(rounds))
	errs := make([]error, len(rounds))

	var workers sync.WaitGroup
	for i, round := range rounds {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			items, err := roundOdds(item, round, params)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = RoundOdds{Round: round, Odds: items}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit round %d to worker pool: %w", round, err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func roundOdds(item season.Season, round uint, params elo.Params) ([]odds.Odds, error) {
	out, err := elo.RoundOdds(item, round, params)
	if err != nil {
		return nil, fmt.Errorf("odds for season %s round %d: %w", item.ID, round, err)
	}
	return out, nil
}
