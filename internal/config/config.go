package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dfsline/contest-tracker/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline. Everything comes from
// the environment; DK_COOKIE is the borrowed browser session and has no
// sensible default.
type Config struct {
	AppEnv        string
	ServiceName   string
	DBURL         string
	MigrationsDir string

	DKBaseURL   string
	DKCookie    string
	DKUserAgent string
	DKTimeout   time.Duration

	DKCircuitEnabled      bool
	DKCircuitFailureCount int
	DKCircuitOpenTimeout  time.Duration

	StandingsDir string
	SalariesDir  string
	VIPEntrants  []string

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	dkTimeout, err := getEnvAsDuration("DK_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse DK_TIMEOUT: %w", err)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("DK_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DK_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("DK_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DK_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := getEnvAsDuration("DK_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse DK_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}

	return Config{
		AppEnv:        appEnv,
		ServiceName:   getEnv("SERVICE_NAME", "contest-tracker"),
		DBURL:         dbURL,
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		DKBaseURL:   getEnv("DK_BASE_URL", ""),
		DKCookie:    strings.TrimSpace(getEnv("DK_COOKIE", "")),
		DKUserAgent: getEnv("DK_USER_AGENT", ""),
		DKTimeout:   dkTimeout,

		DKCircuitEnabled:      circuitEnabled,
		DKCircuitFailureCount: circuitFailureCount,
		DKCircuitOpenTimeout:  circuitOpenTimeout,

		StandingsDir: getEnv("STANDINGS_DIR", "data/standings"),
		SalariesDir:  getEnv("SALARIES_DIR", "data/salaries"),
		VIPEntrants:  splitCSV(getEnv("DK_VIP_ENTRANTS", "")),

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
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

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
