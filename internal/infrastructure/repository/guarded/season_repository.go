// Package guarded puts a circuit breaker in front of a season source so a
// missing or unreadable season directory fails fast.
package guarded

import (
	"context"
	"errors"

	"github.com/riskibarqy/league-elo/external/openfootball"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/platform/resilience"
)

type SeasonRepository struct {
	next    season.Repository
	breaker *resilience.Breaker
}

// NewSeasonRepository wraps next. Malformed season text and cancelled
// requests never count as source failures.
func NewSeasonRepository(next season.Repository, cfg resilience.BreakerConfig) *SeasonRepository {
	cfg.IsFailure = isSourceFailure
	return &SeasonRepository{next: next, breaker: resilience.NewBreaker(cfg)}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	var out []season.Season
	err := r.breaker.Do(func() error {
		items, err := r.next.List(ctx)
		out = items
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	var (
		out    season.Season
		exists bool
	)
	err := r.breaker.Do(func() error {
		item, ok, err := r.next.GetByID(ctx, seasonID)
		out, exists = item, ok
		return err
	})
	if err != nil {
		return season.Season{}, false, err
	}
	return out, exists, nil
}

func (r *SeasonRepository) State() resilience.State {
	return r.breaker.State()
}

func isSourceFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, openfootball.ErrMalformedLine):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
