package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-elo/internal/domain/season"
	seasonmock "github.com/riskibarqy/league-elo/internal/mocks/domain/season"
	basecache "github.com/riskibarqy/league-elo/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestSeasonRepository_GetByIDLoadsOnce(t *testing.T) {
	t.Parallel()

	next := seasonmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "pl").
		Return(season.Season{ID: "pl", Fixtures: []season.Fixture{{HomeTeam: "A", AwayTeam: "B"}}}, true, nil).
		Once()
	next.On("GetByID", mock.Anything, "missing").Return(season.Season{}, false, nil).Once()

	repo := NewSeasonRepository(next, basecache.NewStore[any](time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetByID(ctx, "pl")
		if err != nil || !ok || got.ID != "pl" {
			t.Fatalf("get pl #%d: got=%+v ok=%v err=%v", i, got, ok, err)
		}
		got.Fixtures[0].HomeTeam = "mutated"
	}

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(ctx, "missing"); ok || err != nil {
			t.Fatalf("expected cached miss, got ok=%v err=%v", ok, err)
		}
	}
}

func TestSeasonRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := seasonmock.NewRepository(t)
	next.On("List", mock.Anything).Return(nil, errors.New("disk unavailable")).Once()
	next.On("List", mock.Anything).Return([]season.Season{{ID: "pl"}}, nil).Once()

	repo := NewSeasonRepository(next, basecache.NewStore[any](time.Minute))
	ctx := context.Background()

	if _, err := repo.List(ctx); err == nil {
		t.Fatalf("expected first list to fail")
	}
	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected retry to load, got items=%v err=%v", items, err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("expected cached list, got %v", err)
	}
}
