package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/fbsn11/team-management-app/internal/config"
)

func TestDatabaseURL(t *testing.T) {
	got, err := databaseURL(config.Config{StorageDriver: config.StorageSQLite, SQLitePath: "/var/lib/lineups.db"})
	if err != nil {
		t.Fatalf("database url: %v", err)
	}
	if got != "sqlite3:///var/lib/lineups.db" {
		t.Fatalf("unexpected sqlite url: %q", got)
	}

	got, err = databaseURL(config.Config{StorageDriver: config.StoragePostgres, DBURL: "postgres://u:p@db/app"})
	if err != nil {
		t.Fatalf("database url: %v", err)
	}
	if got != "postgres://u:p@db/app" {
		t.Fatalf("unexpected postgres url: %q", got)
	}

	if _, err := databaseURL(config.Config{StorageDriver: config.StorageRedis}); err == nil {
		t.Fatalf("expected error for redis driver")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "sqlite"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("MIGRATIONS_DIR", base)
	t.Setenv("MIGRATIONS_PATH", "")

	got, err := resolveMigrationsDir("sqlite")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != filepath.Join(base, "sqlite") {
		t.Fatalf("unexpected dir: %q", got)
	}

	if _, err := resolveMigrationsDir("postgres"); err == nil {
		t.Fatalf("expected error when the driver directory is missing")
	}
}

func TestParseSteps(t *testing.T) {
	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("expected default of one step, got %d (%v)", steps, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
}

type fakeMigrator struct {
	steps   int
	forced  int
	target  uint
	version uint
	err     error
}

func (f *fakeMigrator) Up() error { return f.err }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = n
	return f.err
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = version
	return f.err
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.target = version
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, false, f.err
}

func TestCommands(t *testing.T) {
	m := &fakeMigrator{err: migrate.ErrNoChange}
	if err := runUp(m, nil, nil); err != nil {
		t.Fatalf("up with no change: %v", err)
	}
	if err := runDown(m, []string{"2"}, nil); err != nil {
		t.Fatalf("down: %v", err)
	}
	if m.steps != -2 {
		t.Fatalf("expected -2 steps, got %d", m.steps)
	}

	m = &fakeMigrator{}
	if err := runForce(m, []string{"3"}, nil); err != nil || m.forced != 3 {
		t.Fatalf("force: forced=%d err=%v", m.forced, err)
	}
	if err := runGoto(m, []string{"1"}, nil); err != nil || m.target != 1 {
		t.Fatalf("goto: target=%d err=%v", m.target, err)
	}
	if err := runGoto(m, nil, nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := runForce(m, []string{"-1"}, nil); err == nil {
		t.Fatalf("expected error for negative version")
	}

	m = &fakeMigrator{version: 1}
	var out bytes.Buffer
	if err := runVersion(m, nil, &out); err != nil {
		t.Fatalf("version: %v", err)
	}
	if out.String() != "version: 1\ndirty: false\n" {
		t.Fatalf("unexpected version output: %q", out.String())
	}

	out.Reset()
	m = &fakeMigrator{err: migrate.ErrNilVersion}
	if err := runVersion(m, nil, &out); err != nil {
		t.Fatalf("version: %v", err)
	}
	if out.String() != "version: none\ndirty: false\n" {
		t.Fatalf("unexpected version output: %q", out.String())
	}

	m = &fakeMigrator{err: errors.New("connection refused")}
	if err := runUp(m, nil, nil); err == nil {
		t.Fatalf("expected up error to propagate")
	}
}
