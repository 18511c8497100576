package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-elo/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
}

// NewSeasonRepository keeps seasons in the given order. A repeated id
// replaces the earlier season in place.
func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	orders := make([]string, 0, len(seasons))

	for _, s := range seasons {
		if _, seen := items[s.ID]; !seen {
			orders = append(orders, s.ID)
		}
		items[s.ID] = s
	}

	return &SeasonRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneSeason(r.items[id]))
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return cloneSeason(s), true, nil
}

func cloneSeason(s season.Season) season.Season {
	s.Fixtures = append([]season.Fixture(nil), s.Fixtures...)
	return s
}
