package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const DefaultStorageKey = "@soccer_team_data"

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	StorageDriver  string
	StorageKey     string
	StorageFileDir string
	RedisURL       string
	RedisTTL       time.Duration
	DBURL          string
	SQLitePath     string

	PersistWorkers               int
	PersistTimeout               time.Duration
	PersistCircuitEnabled        bool
	PersistCircuitFailureCount   int
	PersistCircuitOpenTimeout    time.Duration
	PersistCircuitHalfOpenMaxReq int

	FormationCatalogFile string
	StatsCacheTTL        time.Duration

	MetricsEnabled             bool
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the configuration from the environment. Variables found in
// ENV_FILE (default .env) are applied first without overriding the
// process environment; a missing file is ignored.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:               appEnv,
		ServiceName:          getEnv("SERVICE_NAME", "team-management-app"),
		ServiceVersion:       getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:             logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		StorageKey:           strings.TrimSpace(getEnv("STORAGE_KEY", DefaultStorageKey)),
		StorageFileDir:       strings.TrimSpace(getEnv("STORAGE_FILE_DIR", "./data")),
		RedisURL:             strings.TrimSpace(getEnv("REDIS_URL", "")),
		DBURL:                strings.TrimSpace(getEnv("DB_URL", "")),
		SQLitePath:           strings.TrimSpace(getEnv("SQLITE_PATH", "./data/team-management.db")),
		FormationCatalogFile: strings.TrimSpace(getEnv("FORMATION_CATALOG_FILE", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if err := cfg.loadStorage(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadPersistence(); err != nil {
		return Config{}, err
	}
	if err := cfg.loadObservability(); err != nil {
		return Config{}, err
	}

	if cfg.StatsCacheTTL, err = getEnvAsDuration("STATS_CACHE_TTL", "5m"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) loadStorage() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	if c.StorageKey == "" {
		return fmt.Errorf("STORAGE_KEY cannot be empty")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StorageFile:
		if c.StorageFileDir == "" {
			return fmt.Errorf("STORAGE_FILE_DIR is required when STORAGE_DRIVER=file")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORAGE_DRIVER=redis")
		}
	case StoragePostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s, %s, %s, %s",
			c.StorageDriver, StorageMemory, StorageFile, StorageRedis, StoragePostgres, StorageSQLite)
	}

	ttl, err := time.ParseDuration(strings.TrimSpace(getEnv("REDIS_TTL", "0s")))
	if err != nil {
		return fmt.Errorf("parse REDIS_TTL: %w", err)
	}
	if ttl < 0 {
		return fmt.Errorf("REDIS_TTL must be >= 0")
	}
	c.RedisTTL = ttl
	return nil
}

func (c *Config) loadPersistence() error {
	var err error
	if c.PersistWorkers, err = getEnvAsInt("PERSIST_WORKERS", 4); err != nil {
		return fmt.Errorf("parse PERSIST_WORKERS: %w", err)
	}
	if c.PersistWorkers < 1 {
		return fmt.Errorf("PERSIST_WORKERS must be >= 1")
	}
	if c.PersistTimeout, err = getEnvAsDuration("PERSIST_TIMEOUT", "5s"); err != nil {
		return err
	}
	if c.PersistCircuitEnabled, err = strconv.ParseBool(getEnv("PERSIST_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse PERSIST_CIRCUIT_ENABLED: %w", err)
	}
	if c.PersistCircuitFailureCount, err = getEnvAsInt("PERSIST_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse PERSIST_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if c.PersistCircuitFailureCount < 1 {
		return fmt.Errorf("PERSIST_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if c.PersistCircuitOpenTimeout, err = getEnvAsDuration("PERSIST_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if c.PersistCircuitHalfOpenMaxReq, err = getEnvAsInt("PERSIST_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse PERSIST_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if c.PersistCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("PERSIST_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func (c *Config) loadObservability() error {
	var err error
	if c.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}
	if c.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	c.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if c.UptraceDSN == "" {
		c.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if c.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	c.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	c.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", c.ServiceName))
	c.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	c.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	c.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	return nil
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
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

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
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
