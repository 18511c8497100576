package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/platform/export"
	"github.com/riskibarqy/league-elo/internal/usecase"
)

// seasonQuery holds the optional query parameters shared by the season
// routes. Unset pointers fall back to the configured defaults.
type seasonQuery struct {
	K             *float64 `validate:"omitempty,gt=0"`
	InitialRating *int     `validate:"omitempty,gte=0,lte=10000"`
	ScoreFactor   *float64 `validate:"omitempty,gte=0"`
	Round         *uint
	Rounds        []uint `validate:"omitempty,max=64"`
	Format        string `validate:"omitempty,oneof=json csv yaml"`
}

func (h *Handler) parseSeasonQuery(ctx context.Context, values url.Values) (seasonQuery, error) {
	var q seasonQuery
	var err error

	if q.K, err = parseOptionalFloat(values, "k"); err != nil {
		return seasonQuery{}, err
	}
	if q.ScoreFactor, err = parseOptionalFloat(values, "score_factor"); err != nil {
		return seasonQuery{}, err
	}
	if raw := strings.TrimSpace(values.Get("initial_rating")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return seasonQuery{}, fmt.Errorf("%w: initial_rating must be an integer", usecase.ErrInvalidInput)
		}
		q.InitialRating = &v
	}
	if raw := strings.TrimSpace(values.Get("round")); raw != "" {
		v, err := parseRound(raw)
		if err != nil {
			return seasonQuery{}, err
		}
		q.Round = &v
	}
	if raw := strings.TrimSpace(values.Get("rounds")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := parseRound(part)
			if err != nil {
				return seasonQuery{}, err
			}
			q.Rounds = append(q.Rounds, v)
		}
	}
	if q.Round != nil && len(q.Rounds) > 0 {
		return seasonQuery{}, fmt.Errorf("%w: use either round or rounds", usecase.ErrInvalidInput)
	}
	q.Format = strings.ToLower(strings.TrimSpace(values.Get("format")))

	if err := h.validator.StructCtx(ctx, q); err != nil {
		return seasonQuery{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return q, nil
}

// params overlays the query on the configured defaults.
func (q seasonQuery) params(defaults elo.Params) elo.Params {
	out := defaults
	if q.K != nil {
		out.K = *q.K
	}
	if q.InitialRating != nil {
		out.InitialRating = *q.InitialRating
	}
	if q.ScoreFactor != nil {
		out.ScoreFactor = *q.ScoreFactor
	}
	return out
}

// format defaults to the JSON envelope.
func (q seasonQuery) format() export.Format {
	if q.Format == "" {
		return export.FormatJSON
	}
	return export.Format(q.Format)
}

func parseOptionalFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

func parseRound(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: round %q must be a non-negative integer", usecase.ErrInvalidInput, raw)
	}
	return uint(v), nil
}
