// Package sqlstore keeps documents in the app_documents table of a
// PostgreSQL or SQLite database.
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
	qb "github.com/fbsn11/team-management-app/internal/platform/querybuilder"
)

const tableName = "app_documents"

type documentRow struct {
	Key       string    `db:"doc_key"`
	Value     string    `db:"doc_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ persistence.KVStore = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := qb.Upsert(tableName, "doc_key", documentRow{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return crerr.Wrap(err, "build upsert document query")
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert document %s", key)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.SelectFrom(tableName, "doc_value").
		WhereEq("doc_key", key).
		Limit(1).
		Build()
	if err != nil {
		return nil, false, crerr.Wrap(err, "build load document query")
	}

	var value string
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if crerr.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "load document %s", key)
	}
	return []byte(value), true, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
