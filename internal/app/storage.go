package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/fbsn11/team-management-app/internal/config"
	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence/file"
	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence/redis"
	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence/sqlstore"
	"github.com/fbsn11/team-management-app/internal/infrastructure/repository/memory"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

// OpenStore connects the KV backend selected by cfg.StorageDriver.
func OpenStore(ctx context.Context, cfg config.Config) (persistence.KVStore, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		return persistence.NewMemoryStore(), nil
	case config.StorageFile:
		return file.New(cfg.StorageFileDir)
	case config.StorageRedis:
		redisCfg := redis.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.TTL = cfg.RedisTTL
		return redis.New(ctx, redisCfg)
	case config.StoragePostgres:
		db, err := sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db), nil
	case config.StorageSQLite:
		db, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// LoadState reads the persisted document and returns the store the
// repositories share. A backend failure is returned; a missing or corrupt
// value yields an empty document.
func LoadState(ctx context.Context, cfg config.Config, store persistence.KVStore, logger *logging.Logger) (*memory.Store, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var doc memory.Document
	found, err := persistence.LoadDocument(ctx, store, cfg.StorageKey, &doc, logger)
	if err != nil {
		return nil, err
	}
	if found {
		logger.InfoContext(ctx, "document loaded",
			"key", cfg.StorageKey,
			"teams", len(doc.Teams),
			"players", len(doc.Players),
			"matches", len(doc.Matches),
			"lineups", len(doc.Lineups),
		)
	}
	return memory.NewStore(doc), nil
}

// LoadCatalog returns the built-in catalog unless FORMATION_CATALOG_FILE
// points at an override.
func LoadCatalog(cfg config.Config) (*formation.Catalog, error) {
	path := strings.TrimSpace(cfg.FormationCatalogFile)
	if path == "" {
		return formation.DefaultCatalog(), nil
	}
	catalog, err := formation.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("load formation catalog: %w", err)
	}
	return catalog, nil
}
