package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-elo/internal/config"
	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
)

func testConfig(dir string) config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		ServiceName:              "league-elo-api",
		HTTPAddr:                 ":0",
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
		SeasonDir:                dir,
		Elo:                      elo.DefaultParams(),
		OddsWorkers:              2,
		CacheEnabled:             true,
		CacheTTL:                 time.Minute,
		SourceBreakerEnabled:     true,
		SourceBreakerThreshold:   3,
		SourceBreakerOpenTimeout: time.Minute,
		CORSAllowedOrigins:       []string{"*"},
	}
}

func TestNewHTTPServer_ServesSeasonDir(t *testing.T) {
	dir := t.TempDir()
	text := "# Test League 2018/19\n\nMatchday 1\n[Sat Aug/11]\n  Team A  1-0  Team B\n"
	if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte(text), 0o644); err != nil {
		t.Fatalf("write season: %v", err)
	}

	srv, err := NewHTTPServer(testConfig(dir), logging.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/test/standings?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Team A,2018-08-11,1,1,0,0,1,0,1516") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestNewHTTPServer_Validation(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.HTTPAddr = ""
	if _, err := NewHTTPServer(cfg, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}

	cfg = testConfig(t.TempDir())
	cfg.Elo.K = 0
	if _, err := NewHTTPServer(cfg, nil); err == nil {
		t.Fatalf("expected error for invalid default params")
	}
}
