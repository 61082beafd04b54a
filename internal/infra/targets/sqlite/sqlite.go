package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/rdgen/internal/domain"
)

// TableSink writes generated rows into a table of a SQLite database file.
type TableSink struct {
	path string
	db   *sql.DB
}

func NewTableSink(path string) *TableSink {
	return &TableSink{path: path}
}

func (s *TableSink) Connect() error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

func (s *TableSink) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *TableSink) ServerVersion() (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT sqlite_version()`).Scan(&v)
	return v, err
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (s *TableSink) CreateTableIfNotExists(table *domain.Table) error {
	defs := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		defs[i] = quote(c.Name) + " " + affinity(c.Type)
	}
	_, err := s.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(table.Name), strings.Join(defs, ", ")))
	return err
}

func affinity(t domain.ColumnType) string {
	switch t {
	case domain.ColumnTypeBigInt:
		return "INTEGER"
	case domain.ColumnTypeDouble:
		return "REAL"
	default:
		return "TEXT"
	}
}

// TruncateTable deletes every row; SQLite has no TRUNCATE.
func (s *TableSink) TruncateTable(tableName string) error {
	_, err := s.db.Exec("DELETE FROM " + quote(tableName))
	return err
}

func insertStatement(tableName string, columns []string) string {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = quote(c)
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(tableName), strings.Join(cols, ", "), marks)
}

// InsertBatch inserts rows with one prepared statement in one transaction.
func (s *TableSink) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertStatement(tableName, columns))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}
