package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mmrzaf/rdgen/internal/domain"
)

func TestTableSink_CreateInsertTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sink.db")
	tgt := NewTableSink(path)
	if err := tgt.Connect(); err != nil {
		t.Fatal(err)
	}
	defer tgt.Close()

	table := &domain.Table{
		Name: "people",
		Columns: []domain.Column{
			{Name: "username", Type: domain.ColumnTypeText},
			{Name: "age", Type: domain.ColumnTypeBigInt},
			{Name: "score", Type: domain.ColumnTypeDouble},
		},
	}
	if err := tgt.CreateTableIfNotExists(table); err != nil {
		t.Fatal(err)
	}
	// second call is a no-op
	if err := tgt.CreateTableIfNotExists(table); err != nil {
		t.Fatal(err)
	}

	rows := [][]interface{}{
		{"alice", int64(30), 1.5},
		{"bob", int64(22), 2.25},
	}
	if err := tgt.InsertBatch("people", table.ColumnNames(), rows); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	var sum float64
	if err := db.QueryRow(`SELECT COUNT(*), SUM(score) FROM people`).Scan(&n, &sum); err != nil {
		t.Fatal(err)
	}
	if n != 2 || sum != 3.75 {
		t.Fatalf("unexpected count=%d sum=%v", n, sum)
	}

	if err := tgt.TruncateTable("people"); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM people`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected empty table after truncate, got %d", n)
	}

	if ver, err := tgt.ServerVersion(); err != nil || ver == "" {
		t.Fatalf("unexpected version ver=%q err=%v", ver, err)
	}
}

func TestInsertStatementQuotes(t *testing.T) {
	got := insertStatement("order", []string{"id", "total"})
	want := `INSERT INTO "order" ("id", "total") VALUES (?, ?)`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
