package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/riskibarqy/league-elo/internal/domain/season"
	"github.com/riskibarqy/league-elo/internal/platform/export"
	"github.com/riskibarqy/league-elo/internal/usecase"
)

type seasonDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	League      string `json:"league"`
	StartYear   int    `json:"start_year"`
	Teams       int    `json:"teams"`
	Fixtures    int    `json:"fixtures"`
	Played      int    `json:"played"`
	Rounds      []uint `json:"rounds"`
	NextRound   *uint  `json:"next_round,omitempty"`
	FirstMatch  string `json:"first_match,omitempty"`
	LastMatch   string `json:"last_match,omitempty"`
	IsCompleted bool   `json:"is_completed"`
}

type roundOddsDTO struct {
	Round uint             `json:"round"`
	Odds  []export.OddsRow `json:"odds"`
}

func toSeasonDTO(item season.Season) seasonDTO {
	dto := seasonDTO{
		ID:        item.ID,
		Name:      item.Name,
		League:    item.League,
		StartYear: item.StartYear,
		Teams:     len(item.Teams()),
		Fixtures:  len(item.Fixtures),
		Played:    item.PlayedCount(),
		Rounds:    item.Rounds(),
	}
	if round, ok := item.NextRound(); ok {
		dto.NextRound = &round
	} else {
		dto.IsCompleted = true
	}

	for _, f := range item.Fixtures {
		if f.Date.IsZero() {
			continue
		}
		day := f.Date.Format(time.DateOnly)
		if dto.FirstMatch == "" || day < dto.FirstMatch {
			dto.FirstMatch = day
		}
		if day > dto.LastMatch {
			dto.LastMatch = day
		}
	}

	return dto
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasonService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list seasons failed", err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSeasonDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	item, err := h.seasonService.Get(ctx, r.PathValue("seasonID"))
	if err != nil {
		h.fail(ctx, w, "get season failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toSeasonDTO(item))
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	q, err := h.parseSeasonQuery(ctx, r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "invalid fixtures query", err)
		return
	}

	items, err := h.seasonService.ListFixtures(ctx, r.PathValue("seasonID"), q.Round)
	if err != nil {
		h.fail(ctx, w, "list fixtures failed", err)
		return
	}
	writeRows(ctx, w, q.format(), export.FixtureRows(items))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	q, err := h.parseSeasonQuery(ctx, r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "invalid standings query", err)
		return
	}

	items, err := h.standingService.Replay(ctx, r.PathValue("seasonID"), q.params(h.defaults))
	if err != nil {
		h.fail(ctx, w, "replay season failed", err)
		return
	}
	writeRows(ctx, w, q.format(), export.StandingRows(items))
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTable")
	defer span.End()

	q, err := h.parseSeasonQuery(ctx, r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "invalid table query", err)
		return
	}

	rows, err := h.standingService.Table(ctx, r.PathValue("seasonID"), q.params(h.defaults))
	if err != nil {
		h.fail(ctx, w, "build table failed", err)
		return
	}
	writeRows(ctx, w, q.format(), export.TableRows(rows))
}

func (h *Handler) GetTeamHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamHistory")
	defer span.End()

	q, err := h.parseSeasonQuery(ctx, r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "invalid team history query", err)
		return
	}

	items, err := h.standingService.TeamHistory(ctx, r.PathValue("seasonID"), r.PathValue("team"), q.params(h.defaults))
	if err != nil {
		h.fail(ctx, w, "team history failed", err)
		return
	}
	writeRows(ctx, w, q.format(), export.StandingRows(items))
}

// GetOdds serves one round, several rounds, or the next round when the
// request names none.
func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOdds")
	defer span.End()

	q, err := h.parseSeasonQuery(ctx, r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "invalid odds query", err)
		return
	}

	seasonID := r.PathValue("seasonID")
	params := q.params(h.defaults)

	var results []usecase.RoundOdds
	switch {
	case len(q.Rounds) > 0:
		results, err = h.oddsService.OddsForRounds(ctx, seasonID, q.Rounds, params)
	case q.Round != nil:
		items, roundErr := h.oddsService.RoundOdds(ctx, seasonID, *q.Round, params)
		results, err = []usecase.RoundOdds{{Round: *q.Round, Odds: items}}, roundErr
	default:
		var next usecase.RoundOdds
		next, err = h.oddsService.NextRoundOdds(ctx, seasonID, params)
		results = []usecase.RoundOdds{next}
	}
	if err != nil {
		h.fail(ctx, w, "compute odds failed", err)
		return
	}

	format := q.format()
	if format != export.FormatJSON {
		rows := make([]export.OddsRow, 0)
		for _, result := range results {
			rows = append(rows, export.OddsRows(result.Odds)...)
		}
		writeRows(ctx, w, format, rows)
		return
	}

	out := make([]roundOddsDTO, 0, len(results))
	for _, result := range results {
		out = append(out, roundOddsDTO{Round: result.Round, Odds: export.OddsRows(result.Odds)})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// fail logs server-side failures at error level and client mistakes at
// debug level, then writes the mapped error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, "error", err)
	} else {
		h.logger.DebugContext(ctx, msg, "error", err)
	}
	writeError(ctx, w, err)
}
