package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STORAGE_KEY", "")
	t.Setenv("PERSIST_WORKERS", "")
	t.Setenv("STATS_CACHE_TTL", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("METRICS_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected default storage driver: %q", cfg.StorageDriver)
	}
	if cfg.StorageKey != DefaultStorageKey {
		t.Fatalf("unexpected default storage key: %q", cfg.StorageKey)
	}
	if cfg.PersistWorkers != 4 {
		t.Fatalf("unexpected default persist workers: %d", cfg.PersistWorkers)
	}
	if !cfg.PersistCircuitEnabled {
		t.Fatalf("expected persist circuit enabled by default")
	}
	if cfg.StatsCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected default stats cache ttl: %s", cfg.StatsCacheTTL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
	if cfg.RedisTTL != 0 {
		t.Fatalf("expected no redis ttl by default, got %s", cfg.RedisTTL)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("redis requires url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")
		t.Setenv("REDIS_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_DRIVER=redis without REDIS_URL")
		}
	})

	t.Run("postgres requires url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
		}
	})

	t.Run("driver is case insensitive", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " SQLite ")
		t.Setenv("SQLITE_PATH", "/tmp/lineups.db")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageSQLite {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("negative redis ttl", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("REDIS_TTL", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative REDIS_TTL")
		}
	})
}

func TestLoad_PersistenceValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("workers must be positive", func(t *testing.T) {
		t.Setenv("PERSIST_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for PERSIST_WORKERS=0")
		}
	})

	t.Run("timeout must parse", func(t *testing.T) {
		t.Setenv("PERSIST_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid PERSIST_TIMEOUT")
		}
	})

	t.Run("circuit settings", func(t *testing.T) {
		t.Setenv("PERSIST_CIRCUIT_ENABLED", "false")
		t.Setenv("PERSIST_CIRCUIT_FAILURE_COUNT", "3")
		t.Setenv("PERSIST_CIRCUIT_OPEN_TIMEOUT", "30s")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PersistCircuitEnabled {
			t.Fatalf("expected PersistCircuitEnabled=false")
		}
		if cfg.PersistCircuitFailureCount != 3 {
			t.Fatalf("unexpected failure count: %d", cfg.PersistCircuitFailureCount)
		}
		if cfg.PersistCircuitOpenTimeout != 30*time.Second {
			t.Fatalf("unexpected open timeout: %s", cfg.PersistCircuitOpenTimeout)
		}
	})
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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
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
	t.Setenv("SERVICE_NAME", "lineup-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "lineup-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "STORAGE_DRIVER=file\nSTORAGE_FILE_DIR=/var/lib/lineups\nSTATS_CACHE_TTL=90s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("ENV_FILE", path)
	t.Setenv("APP_ENV", EnvDev)
	// Registered with t.Setenv so the values godotenv writes are restored.
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STORAGE_FILE_DIR", "")
	t.Setenv("STATS_CACHE_TTL", "")
	os.Unsetenv("STORAGE_DRIVER")
	os.Unsetenv("STORAGE_FILE_DIR")
	os.Unsetenv("STATS_CACHE_TTL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageFile {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.StorageFileDir != "/var/lib/lineups" {
		t.Fatalf("unexpected storage dir: %q", cfg.StorageFileDir)
	}
	if cfg.StatsCacheTTL != 90*time.Second {
		t.Fatalf("unexpected stats cache ttl: %s", cfg.StatsCacheTTL)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("APP_ENV", EnvDev)

	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}
