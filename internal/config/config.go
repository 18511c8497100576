// Package config reads the API's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-elo/internal/domain/elo"
	"github.com/riskibarqy/league-elo/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	SeasonDir                  string
	Elo                        elo.Params
	OddsWorkers                int
	CacheEnabled               bool
	CacheTTL                   time.Duration
	SourceBreakerEnabled       bool
	SourceBreakerThreshold     int
	SourceBreakerOpenTimeout   time.Duration
	CORSAllowedOrigins         []string
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// Load returns the first invalid setting it meets, naming its variable.
func Load() (Config, error) {
	env := &envReader{}
	cfg := Config{}

	appEnv := strings.ToLower(strings.TrimSpace(env.str("APP_ENV", EnvDev)))
	switch appEnv {
	case EnvDev, EnvStage, EnvProd:
		cfg.AppEnv = appEnv
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", appEnv, EnvDev, EnvStage, EnvProd)
	}

	cfg.ServiceName = env.str("APP_SERVICE_NAME", "league-elo-api")
	cfg.ServiceVersion = env.str("APP_SERVICE_VERSION", "dev")
	cfg.HTTPAddr = env.str("APP_HTTP_ADDR", ":8080")
	cfg.ReadTimeout = env.positiveDuration("APP_READ_TIMEOUT", 10*time.Second)
	cfg.WriteTimeout = env.positiveDuration("APP_WRITE_TIMEOUT", 15*time.Second)
	cfg.LogLevel = logging.ParseLevel(env.str("APP_LOG_LEVEL", "info"))

	cfg.SeasonDir = strings.TrimSpace(env.str("SEASON_DIR", "./data"))
	cfg.Elo = elo.Params{
		InitialRating: env.integer("ELO_INITIAL_RATING", elo.DefaultInitialRating, math.MinInt),
		K:             env.float("ELO_K", elo.DefaultK, "> 0", func(v float64) bool { return v > 0 }),
		ScoreFactor:   env.float("ELO_SCORE_FACTOR", 0, ">= 0", func(v float64) bool { return v >= 0 }),
	}
	cfg.OddsWorkers = env.integer("ODDS_WORKERS", 4, 1)

	cfg.CacheEnabled = env.boolean("CACHE_ENABLED", true)
	cfg.CacheTTL = env.positiveDuration("CACHE_TTL", 60*time.Second)
	cfg.SourceBreakerEnabled = env.boolean("SOURCE_BREAKER_ENABLED", true)
	cfg.SourceBreakerThreshold = env.integer("SOURCE_BREAKER_FAILURE_THRESHOLD", 5, 1)
	cfg.SourceBreakerOpenTimeout = env.positiveDuration("SOURCE_BREAKER_OPEN_TIMEOUT", 15*time.Second)

	cfg.CORSAllowedOrigins = splitCSV(env.str("CORS_ALLOWED_ORIGINS", "*"))

	cfg.UptraceEnabled = env.boolean("UPTRACE_ENABLED", false)
	cfg.UptraceDSN = strings.TrimSpace(env.str("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(env.str("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	cfg.UptraceCaptureRequestBody = env.boolean("UPTRACE_CAPTURE_REQUEST_BODY", false)
	cfg.UptraceRequestBodyMaxBytes = env.integer("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192, 1)

	cfg.PprofEnabled = env.boolean("PPROF_ENABLED", false)
	cfg.PprofAddr = strings.TrimSpace(env.str("PPROF_ADDR", ":6060"))

	cfg.PyroscopeEnabled = env.boolean("PYROSCOPE_ENABLED", false)
	cfg.PyroscopeServerAddress = strings.TrimSpace(env.str("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = env.str("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = env.str("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = env.str("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = env.str("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeUploadRate = env.positiveDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)

	if env.err != nil {
		return Config{}, env.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks rules that span more than one variable.
func (c Config) validate() error {
	var errs []error
	if len(c.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must not be empty"))
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		errs = append(errs, errors.New("UPTRACE_DSN is required when UPTRACE_ENABLED=true"))
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		errs = append(errs, errors.New("PPROF_ADDR is required when PPROF_ENABLED=true"))
	}
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		errs = append(errs, errors.New("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true"))
	}
	return errors.Join(errs...)
}

// envReader keeps the first parse failure so Load can read every variable
// in sequence and check once.
type envReader struct {
	err error
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("parse %s: %w", key, err)
	}
}

// str treats a blank value as unset.
func (r *envReader) str(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (r *envReader) raw(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (r *envReader) boolean(key string, fallback bool) bool {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return out
}

func (r *envReader) integer(key string, fallback, minimum int) int {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	out, err := strconv.Atoi(value)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	if out < minimum {
		r.fail(key, fmt.Errorf("%d must be >= %d", out, minimum))
		return fallback
	}
	return out
}

// float rejects NaN and infinities as well as values failing valid.
func (r *envReader) float(key string, fallback float64, rule string, valid func(float64) bool) float64 {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	if math.IsNaN(out) || math.IsInf(out, 0) || !valid(out) {
		r.fail(key, fmt.Errorf("%q must be a finite number %s", value, rule))
		return fallback
	}
	return out
}

func (r *envReader) positiveDuration(key string, fallback time.Duration) time.Duration {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	out, err := time.ParseDuration(value)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	if out <= 0 {
		r.fail(key, fmt.Errorf("%s must be > 0", out))
		return fallback
	}
	return out
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseUptraceDSNFromOTLPHeaders picks uptrace-dsn out of the standard
// OTEL_EXPORTER_OTLP_HEADERS list so one variable can feed both.
func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}
	return ""
}
