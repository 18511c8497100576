package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/league-elo/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_SERVICE_NAME", "APP_HTTP_ADDR", "APP_LOG_LEVEL", "SEASON_DIR",
		"ELO_INITIAL_RATING", "ELO_K", "ELO_SCORE_FACTOR", "ODDS_WORKERS", "UPTRACE_ENABLED",
		"SOURCE_BREAKER_ENABLED", "SOURCE_BREAKER_FAILURE_THRESHOLD", "SOURCE_BREAKER_OPEN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev || cfg.ServiceName != "league-elo-api" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected service defaults: %+v", cfg)
	}
	if cfg.SeasonDir != "./data" {
		t.Fatalf("unexpected season dir: %q", cfg.SeasonDir)
	}
	if cfg.Elo.InitialRating != 1500 || cfg.Elo.K != 32 || cfg.Elo.ScoreFactor != 0 {
		t.Fatalf("unexpected elo defaults: %+v", cfg.Elo)
	}
	if cfg.OddsWorkers != 4 {
		t.Fatalf("unexpected odds workers: %d", cfg.OddsWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if !cfg.SourceBreakerEnabled || cfg.SourceBreakerThreshold != 5 || cfg.SourceBreakerOpenTimeout != 15*time.Second {
		t.Fatalf("unexpected breaker defaults: enabled=%v threshold=%d timeout=%s",
			cfg.SourceBreakerEnabled, cfg.SourceBreakerThreshold, cfg.SourceBreakerOpenTimeout)
	}
}

func TestLoad_EloParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ELO_INITIAL_RATING", "1200")
		t.Setenv("ELO_K", "20.5")
		t.Setenv("ELO_SCORE_FACTOR", "0.1")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Elo.InitialRating != 1200 || cfg.Elo.K != 20.5 || cfg.Elo.ScoreFactor != 0.1 {
			t.Fatalf("unexpected elo params: %+v", cfg.Elo)
		}
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "k not a number", key: "ELO_K", value: "fast"},
		{name: "k zero", key: "ELO_K", value: "0"},
		{name: "k negative", key: "ELO_K", value: "-4"},
		{name: "k nan", key: "ELO_K", value: "NaN"},
		{name: "score factor negative", key: "ELO_SCORE_FACTOR", value: "-0.1"},
		{name: "score factor infinite", key: "ELO_SCORE_FACTOR", value: "+Inf"},
		{name: "initial rating not int", key: "ELO_INITIAL_RATING", value: "15.5"},
		{name: "odds workers zero", key: "ODDS_WORKERS", value: "0"},
		{name: "breaker threshold zero", key: "SOURCE_BREAKER_FAILURE_THRESHOLD", value: "0"},
		{name: "breaker timeout negative", key: "SOURCE_BREAKER_OPEN_TIMEOUT", value: "-1s"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "league-elo-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "league-elo-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
			t.Fatalf("unexpected default origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("custom", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		want := []string{"https://a.example", "https://b.example"}
		if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
			t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS_ALLOWED_ORIGINS")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "false")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CacheEnabled {
			t.Fatalf("expected cache disabled")
		}
	})
}
