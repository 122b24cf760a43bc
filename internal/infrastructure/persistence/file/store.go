// Package file stores each key as one JSON file inside a directory.
package file

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"

	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
)

const fileExt = ".json"

type Store struct {
	dir string
}

var _ persistence.KVStore = (*Store)(nil)

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, crerr.New("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create file store directory %s", dir)
	}
	return &Store{dir: dir}, nil
}

// path hex-encodes the key so keys like "@soccer_team_data" are safe file names.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(key))+fileExt)
}

// Save writes to a temporary file and renames it over the target.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", key)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %s", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "sync %s", key)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", key)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return crerr.Wrapf(err, "rename %s", key)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if crerr.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "read %s", key)
	}
	return raw, true, nil
}

func (s *Store) Close() error {
	return nil
}
