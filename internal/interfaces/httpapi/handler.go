package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
	"github.com/riskibarqy/league-elo/internal/usecase"
)

type Handler struct {
	seasonService   *usecase.SeasonService
	standingService *usecase.StandingService
	oddsService     *usecase.OddsService
	defaults        elo.Params
	logger          *logging.Logger
	validator       *validator.Validate
}

// NewHandler wires the season routes. defaults apply to every rating
// parameter a request leaves out.
func NewHandler(
	seasonService *usecase.SeasonService,
	standingService *usecase.StandingService,
	oddsService *usecase.OddsService,
	defaults elo.Params,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:   seasonService,
		standingService: standingService,
		oddsService:     oddsService,
		defaults:        defaults,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
