package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/fbsn11/team-management-app/internal/config"
)

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Migrate(version uint) error
}

type command func(m migrator, args []string, out io.Writer) error

var commands = map[string]command{
	"up":      runUp,
	"down":    runDown,
	"version": runVersion,
	"force":   runForce,
	"goto":    runGoto,
	"migrate": runGoto,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(os.Args[1]))]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	dbURL, err := databaseURL(cfg)
	if err != nil {
		log.Fatal(err)
	}
	dir, err := resolveMigrationsDir(cfg.StorageDriver)
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	log.Printf("schema source=%s driver=%s", sourceURL, cfg.StorageDriver)

	err = cmd(m, os.Args[2:], os.Stdout)
	closeMigrator(m)
	switch {
	case errors.Is(err, errUsage):
		printUsage()
		os.Exit(2)
	case err != nil:
		log.Fatal(err)
	}
}

func runUp(m migrator, _ []string, _ io.Writer) error {
	if err := ignoreNoChange(m.Up()); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}

func runDown(m migrator, args []string, _ io.Writer) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps)); err != nil {
		return err
	}
	log.Printf("rolled back %d migration(s)", steps)
	return nil
}

func runVersion(m migrator, _ []string, out io.Writer) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		_, err = fmt.Fprintln(out, "version: none\ndirty: false")
		return err
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return err
}

func runForce(m migrator, args []string, _ io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: force requires a version argument", errUsage)
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	log.Printf("forced version to %d", version)
	return nil
}

func runGoto(m migrator, args []string, _ io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: goto requires a target version argument", errUsage)
	}
	target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid target version %q: %w", args[0], err)
	}
	if err := ignoreNoChange(m.Migrate(uint(target))); err != nil {
		return err
	}
	log.Printf("migrated to version %d", target)
	return nil
}

// databaseURL turns the configured SQL store into a golang-migrate URL.
func databaseURL(cfg config.Config) (string, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return cfg.DBURL, nil
	case config.StorageSQLite:
		return "sqlite3://" + filepath.ToSlash(cfg.SQLitePath), nil
	default:
		return "", fmt.Errorf("STORAGE_DRIVER=%s has no schema to migrate (use %s or %s)",
			cfg.StorageDriver, config.StoragePostgres, config.StorageSQLite)
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("close migration db: %v", dbErr)
	}
}

// resolveMigrationsDir finds <root>/<driver> under the first existing root.
func resolveMigrationsDir(driver string) (string, error) {
	roots := []string{
		os.Getenv("MIGRATIONS_DIR"),
		os.Getenv("MIGRATIONS_PATH"),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, root := range roots {
		if root = strings.TrimSpace(root); root == "" {
			continue
		}
		dir, err := filepath.Abs(filepath.Join(root, driver))
		if err != nil {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("migration directory for %s not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)", driver)
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [n]|version|force <v>|goto <v>>\n", name)
	fmt.Fprintln(os.Stderr, "STORAGE_DRIVER selects the schema: postgres uses DB_URL, sqlite uses SQLITE_PATH")
}
