package querybuilder

import (
	"testing"
	"time"
)

type documentRow struct {
	Key       string    `db:"doc_key"`
	Value     string    `db:"doc_value"`
	UpdatedAt time.Time `db:"updated_at"`
	Note      string    `db:"-"`
	internal  string
}

func TestSelectFrom(t *testing.T) {
	query, args, err := SelectFrom("app_documents", "doc_value").
		WhereEq("doc_key", "@soccer_team_data").
		Limit(1).
		Build()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT doc_value FROM app_documents WHERE doc_key = $1 LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "@soccer_team_data" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectFrom_RequiresColumns(t *testing.T) {
	if _, _, err := SelectFrom("app_documents").Build(); err == nil {
		t.Fatalf("expected error without columns")
	}
}

func TestUpsert(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	query, args, err := Upsert("app_documents", "doc_key", documentRow{Key: "k", Value: "{}", UpdatedAt: at, Note: "n", internal: "x"})
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO app_documents (doc_key, doc_value, updated_at) VALUES ($1, $2, $3) " +
		"ON CONFLICT (doc_key) DO UPDATE SET doc_value = excluded.doc_value, updated_at = excluded.updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "k" || args[2] != at {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsert_MissingConflictColumn(t *testing.T) {
	if _, _, err := Upsert("app_documents", "id", documentRow{Key: "k"}); err == nil {
		t.Fatalf("expected error when the conflict column is not part of the row")
	}
}

func TestUpsert_RejectsNonStruct(t *testing.T) {
	if _, _, err := Upsert("app_documents", "doc_key", "value"); err == nil {
		t.Fatalf("expected error for non-struct row")
	}
	var row *documentRow
	if _, _, err := Upsert("app_documents", "doc_key", row); err == nil {
		t.Fatalf("expected error for nil row")
	}
}
