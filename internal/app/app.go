package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/league-elo/internal/config"
	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/domain/standing"
	cacherepo "github.com/riskibarqy/league-elo/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-elo/internal/infrastructure/repository/filesystem"
	"github.com/riskibarqy/league-elo/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/league-elo/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-elo/internal/platform/cache"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
	"github.com/riskibarqy/league-elo/internal/platform/resilience"
	"github.com/riskibarqy/league-elo/internal/usecase"
)

// NewHTTPServer wires the season directory, caches and services behind
// the HTTP router.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if err := cfg.Elo.Validate(); err != nil {
		return nil, fmt.Errorf("default rating params: %w", err)
	}

	var seasonRepo season.Repository = filesystem.NewSeasonRepository(cfg.SeasonDir)
	if cfg.SourceBreakerEnabled {
		seasonRepo = guarded.NewSeasonRepository(seasonRepo, resilience.BreakerConfig{
			FailureThreshold: cfg.SourceBreakerThreshold,
			OpenTimeout:      cfg.SourceBreakerOpenTimeout,
			HalfOpenProbes:   1,
		})
	}
	var replayCache *cache.Store[[]standing.Standing]
	if cfg.CacheEnabled {
		seasonRepo = cacherepo.NewSeasonRepository(seasonRepo, cache.NewStore[any](cfg.CacheTTL))
		replayCache = cache.NewStore[[]standing.Standing](cfg.CacheTTL)
	}

	handler := httpapi.NewHandler(
		usecase.NewSeasonService(seasonRepo),
		usecase.NewStandingService(seasonRepo, replayCache),
		usecase.NewOddsService(seasonRepo, cfg.OddsWorkers),
		cfg.Elo,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	logger.Info("http server configured",
		"season_dir", cfg.SeasonDir,
		"cache_enabled", cfg.CacheEnabled,
		"source_breaker_enabled", cfg.SourceBreakerEnabled,
		"odds_workers", cfg.OddsWorkers,
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
