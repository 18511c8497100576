package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/league-elo/internal/config"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
)

var pprofHandlers = map[string]http.HandlerFunc{
	"/debug/pprof/":        pprof.Index,
	"/debug/pprof/cmdline": pprof.Cmdline,
	"/debug/pprof/profile": pprof.Profile,
	"/debug/pprof/symbol":  pprof.Symbol,
	"/debug/pprof/trace":   pprof.Trace,
}

func newPprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	for path, h := range pprofHandlers {
		mux.HandleFunc(path, h)
	}
	return mux
}

// pprofServer keeps the debug endpoints off the public listener.
type pprofServer struct {
	srv    *http.Server
	logger *logging.Logger
}

// startPprof returns nil when pprof is disabled.
func startPprof(cfg config.Config, logger *logging.Logger) *pprofServer {
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil
	}

	p := &pprofServer{
		srv: &http.Server{
			Addr:              cfg.PprofAddr,
			Handler:           newPprofMux(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
	go func() {
		logger.Info("pprof server starting", "addr", cfg.PprofAddr)
		if err := p.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return p
}

func (p *pprofServer) stop(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.srv.Shutdown(ctx); err != nil {
		return err
	}
	p.logger.Info("pprof server stopped")
	return nil
}
