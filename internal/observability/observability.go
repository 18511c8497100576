// Package observability starts tracing and profiling for the API process.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/league-elo/internal/config"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
)

// Stack holds whatever Start turned on.
type Stack struct {
	stopTracing   func(context.Context) error
	stopProfiling func() error
	pprof         *pprofServer
}

// Start brings up tracing, then continuous profiling, then pprof. If a
// later step fails the earlier ones are stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stopTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}

	stopProfiling, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = stopTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	s := &Stack{
		stopTracing:   stopTracing,
		stopProfiling: stopProfiling,
	}
	s.pprof = startPprof(cfg, logger)
	return s, nil
}

// Shutdown stops everything in reverse start order and joins the errors.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if err := s.pprof.stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop pprof: %w", err))
	}
	if err := s.stopProfiling(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := s.stopTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop uptrace: %w", err))
	}
	return errors.Join(errs...)
}
