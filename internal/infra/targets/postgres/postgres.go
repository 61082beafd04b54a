package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mmrzaf/rdgen/internal/domain"
)

const defaultSchema = "public"

// TableSink copies generated rows into a Postgres table using COPY FROM STDIN.
type TableSink struct {
	dsn    string
	schema string
	db     *sql.DB
}

func NewTableSink(dsn, schema string) *TableSink {
	if schema == "" {
		schema = defaultSchema
	}
	return &TableSink{dsn: dsn, schema: schema}
}

func (s *TableSink) Connect() error {
	db, err := sql.Open("postgres", s.dsn)
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
	err := s.db.QueryRow(`SHOW server_version`).Scan(&v)
	return v, err
}

func (s *TableSink) qualified(table string) string {
	return pq.QuoteIdentifier(s.schema) + "." + pq.QuoteIdentifier(table)
}

func (s *TableSink) CreateTableIfNotExists(table *domain.Table) error {
	_, err := s.db.Exec(createStatement(s.qualified(table.Name), table.Columns))
	return err
}

func createStatement(qualified string, cols []domain.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = pq.QuoteIdentifier(c.Name) + " " + sqlType(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", qualified, strings.Join(defs, ", "))
}

func sqlType(t domain.ColumnType) string {
	switch t {
	case domain.ColumnTypeBigInt:
		return "BIGINT"
	case domain.ColumnTypeDouble:
		return "DOUBLE PRECISION"
	case domain.ColumnTypeUUID:
		return "UUID"
	default:
		return "TEXT"
	}
}

func (s *TableSink) TruncateTable(tableName string) error {
	_, err := s.db.Exec("TRUNCATE TABLE " + s.qualified(tableName))
	return err
}

// InsertBatch streams rows through a single COPY inside a transaction.
func (s *TableSink) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyInSchema(s.schema, tableName, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}
	for i, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy row %d: %w", i, err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}
