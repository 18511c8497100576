package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/domain/standing"
	"github.com/riskibarqy/league-elo/internal/platform/cache"
	"go.opentelemetry.io/otel/attribute"
)

type StandingService struct {
	seasonRepo  season.Repository
	replayCache *cache.Store[[]standing.Standing]
}

// NewStandingService builds the service. A nil replayCache replays on every call.
func NewStandingService(seasonRepo season.Repository, replayCache *cache.Store[[]standing.Standing]) *StandingService {
	return &StandingService{
		seasonRepo:  seasonRepo,
		replayCache: replayCache,
	}
}

// Replay returns two snapshots per played fixture, in fixture order.
func (s *StandingService) Replay(ctx context.Context, seasonID string, params elo.Params) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Replay", attribute.String("season.id", seasonID))
	defer span.End()

	if err := validateParams(params); err != nil {
		return nil, err
	}

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}

	return s.replay(ctx, item, params)
}

// Table ranks every team that has played at least once.
func (s *StandingService) Table(ctx context.Context, seasonID string, params elo.Params) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Table", attribute.String("season.id", seasonID))
	defer span.End()

	items, err := s.Replay(ctx, seasonID, params)
	if err != nil {
		return nil, err
	}
	return standing.BuildTable(items), nil
}

// TeamHistory returns one team's snapshots. A team with no played fixture
// has an empty history; a team absent from the season is not found.
func (s *StandingService) TeamHistory(ctx context.Context, seasonID, team string, params elo.Params) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.TeamHistory",
		attribute.String("season.id", seasonID),
		attribute.String("team", team),
	)
	defer span.End()

	team = strings.TrimSpace(team)
	if team == "" {
		return nil, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(item.Teams(), team) {
		return nil, fmt.Errorf("%w: team=%s season=%s", ErrNotFound, team, item.ID)
	}

	items, err := s.replay(ctx, item, params)
	if err != nil {
		return nil, err
	}
	return standing.History(items, team), nil
}

func (s *StandingService) replay(ctx context.Context, item season.Season, params elo.Params) ([]standing.Standing, error) {
	run := func(context.Context) ([]standing.Standing, error) {
		out, err := elo.Replay(item, params)
		if err != nil {
			return nil, fmt.Errorf("replay season %s: %w", item.ID, err)
		}
		return out, nil
	}

	if s.replayCache == nil {
		return run(ctx)
	}

	items, err := s.replayCache.GetOrLoad(ctx, replayCacheKey(item.ID, params), run)
	if err != nil {
		return nil, err
	}
	return append([]standing.Standing(nil), items...), nil
}

func replayCacheKey(seasonID string, params elo.Params) string {
	return "replay:" + seasonID +
		":" + strconv.Itoa(params.InitialRating) +
		":" + strconv.FormatFloat(params.K, 'g', -1, 64) +
		":" + strconv.FormatFloat(params.ScoreFactor, 'g', -1, 64)
}
