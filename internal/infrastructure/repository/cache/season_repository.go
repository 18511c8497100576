package cache

import (
	"context"

	"github.com/riskibarqy/league-elo/internal/domain/season"
	basecache "github.com/riskibarqy/league-elo/internal/platform/cache"
)

const (
	seasonListKey     = "season:list"
	seasonIDKeyPrefix = "season:id:"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store[any]
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store[any]) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, seasonListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, seasonIDKeyPrefix+seasonID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	item := cached.value
	item.Fixtures = append([]season.Fixture(nil), item.Fixtures...)
	return item, cached.exists, nil
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}
