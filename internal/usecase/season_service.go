package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/league-elo/internal/domain/season"
	"go.opentelemetry.io/otel/attribute"
)

type SeasonService struct {
	seasonRepo season.Repository
}

func NewSeasonService(seasonRepo season.Repository) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo}
}

// List returns every known season ordered by id.
func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, sourceError("list seasons", err)
	}

	out := append([]season.Season(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get", attribute.String("season.id", seasonID))
	defer span.End()

	return loadSeason(ctx, s.seasonRepo, seasonID)
}

// ListFixtures returns the fixtures of a season in file order, optionally
// restricted to one round.
func (s *SeasonService) ListFixtures(ctx context.Context, seasonID string, round *uint) ([]season.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListFixtures", attribute.String("season.id", seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return append([]season.Fixture(nil), item.Fixtures...), nil
	}
	return item.FixturesInRound(*round), nil
}

func loadSeason(ctx context.Context, repo season.Repository, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, sourceError("get season", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return item, nil
}
