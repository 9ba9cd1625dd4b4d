package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anthonyrs06/poker-league/internal/platform/logging"
)

// Config stores runtime configuration for the client.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	BackendBaseURL        string
	BackendTimeout        time.Duration
	BackendRateLimit      float64
	BackendRateBurst      int
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int

	PollInterval time.Duration

	CacheEnabled bool
	CacheTTL     time.Duration

	SessionFile string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	LogLevel logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	backendTimeout, err := time.ParseDuration(getEnv("POKER_BACKEND_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_TIMEOUT: %w", err)
	}
	if backendTimeout <= 0 {
		return Config{}, fmt.Errorf("POKER_BACKEND_TIMEOUT must be > 0")
	}

	backendRateLimit, err := getEnvAsFloat("POKER_BACKEND_RATE_LIMIT", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_RATE_LIMIT: %w", err)
	}
	if backendRateLimit <= 0 {
		return Config{}, fmt.Errorf("POKER_BACKEND_RATE_LIMIT must be > 0")
	}
	backendRateBurst, err := getEnvAsInt("POKER_BACKEND_RATE_BURST", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_RATE_BURST: %w", err)
	}
	if backendRateBurst < 1 {
		return Config{}, fmt.Errorf("POKER_BACKEND_RATE_BURST must be >= 1")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("POKER_BACKEND_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("POKER_BACKEND_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("POKER_BACKEND_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("POKER_BACKEND_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("POKER_BACKEND_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("POKER_BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("POKER_BACKEND_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pollInterval, err := time.ParseDuration(getEnv("POKER_POLL_INTERVAL", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse POKER_POLL_INTERVAL: %w", err)
	}
	if pollInterval < time.Second {
		return Config{}, fmt.Errorf("POKER_POLL_INTERVAL must be >= 1s")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", "localhost:6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "poker-league-client"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		BackendBaseURL:        strings.TrimSpace(getEnv("POKER_BACKEND_BASE_URL", "http://localhost:8000")),
		BackendTimeout:        backendTimeout,
		BackendRateLimit:      backendRateLimit,
		BackendRateBurst:      backendRateBurst,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		PollInterval:          pollInterval,
		CacheEnabled:          cacheEnabled,
		CacheTTL:              cacheTTL,
		SessionFile:           strings.TrimSpace(getEnv("POKER_SESSION_FILE", "")),
		PprofEnabled:          pprofEnabled,
		PprofAddr:             pprofAddr,
		UptraceEnabled:        uptraceEnabled,
		UptraceDSN:            uptraceDSN,
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("POKER_BACKEND_BASE_URL cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
