package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/league-elo/external/openfootball"
	"github.com/riskibarqy/league-elo/internal/domain/elo"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// sourceError classifies a failure to read season data. Malformed season
// text is the caller's input; anything else is the source being unavailable.
func sourceError(op string, err error) error {
	if errors.Is(err, openfootball.ErrMalformedLine) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}

func validateParams(params elo.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
