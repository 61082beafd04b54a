package domain

import (
	"fmt"
	"strings"
	"time"
)

// Row is one generated record keyed by field name.
type Row map[string]interface{}

// Format selects how DataGenerator returns its accumulated rows.
type Format int

const (
	FormatArray Format = 1
	FormatJSON  Format = 2
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "array"
	}
}

// ParseFormat maps "array" / "json" (case-insensitive) to a Format. An empty
// string means FormatArray.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "array":
		return FormatArray, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown format: %s", s)
	}
}

type Schema struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Seed        *int64      `json:"seed,omitempty" yaml:"seed,omitempty"`
	Count       int         `json:"count,omitempty" yaml:"count,omitempty"`
	Format      string      `json:"format,omitempty" yaml:"format,omitempty"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

type FieldSpec struct {
	Name   string                 `json:"name" yaml:"name"`
	Type   string                 `json:"type" yaml:"type"`
	Params map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
}

type ColumnType string

const (
	ColumnTypeBigInt ColumnType = "bigint"
	ColumnTypeDouble ColumnType = "double"
	ColumnTypeText   ColumnType = "text"
	ColumnTypeUUID   ColumnType = "uuid"
)

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table describes where generated rows land in a row sink.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

type TargetConfig struct {
	Kind   string `json:"kind" yaml:"kind"`
	DSN    string `json:"dsn" yaml:"dsn"`
	Table  string `json:"table" yaml:"table"`
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Mode   string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

const (
	TargetKindSQLite        = "sqlite"
	TargetKindPostgres      = "postgres"
	TargetKindElasticsearch = "elasticsearch"
)

const (
	TableModeCreate   = "create"
	TableModeTruncate = "truncate"
	TableModeAppend   = "append"
)

type Run struct {
	ID             string     `json:"id" yaml:"id"`
	SchemaID       string     `json:"schema_id" yaml:"schema_id"`
	SchemaName     string     `json:"schema_name" yaml:"schema_name"`
	Seed           int64      `json:"seed" yaml:"seed"`
	ConfigHash     string     `json:"config_hash" yaml:"config_hash"`
	Format         string     `json:"format" yaml:"format"`
	CountRequested int        `json:"count_requested" yaml:"count_requested"`
	CountGenerated int        `json:"count_generated" yaml:"count_generated"`
	RowsTotal      int        `json:"rows_total" yaml:"rows_total"`
	TargetKind     string     `json:"target_kind,omitempty" yaml:"target_kind,omitempty"`
	TargetTable    string     `json:"target_table,omitempty" yaml:"target_table,omitempty"`
	Status         RunStatus  `json:"status" yaml:"status"`
	StartedAt      time.Time  `json:"started_at" yaml:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Error          string     `json:"error,omitempty" yaml:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type GenerateRequest struct {
	SchemaID string        `json:"schema_id,omitempty"`
	Schema   *Schema       `json:"schema,omitempty"`
	Count    int           `json:"count,omitempty"`
	Format   string        `json:"format,omitempty"`
	Seed     *int64        `json:"seed,omitempty"`
	Target   *TargetConfig `json:"target,omitempty"`
}

// GenerateResult carries either Rows (array format) or JSON (json format).
type GenerateResult struct {
	Run  *Run   `json:"run"`
	Rows []Row  `json:"rows,omitempty"`
	JSON string `json:"-"`
}

// TargetCheck is the outcome of probing a row sink before writing to it.
type TargetCheck struct {
	Kind         string             `json:"kind"`
	CheckedAt    time.Time          `json:"checked_at"`
	OK           bool               `json:"ok"`
	LatencyMS    int64              `json:"latency_ms"`
	ServerVer    string             `json:"server_version,omitempty"`
	Capabilities TargetCapabilities `json:"capabilities"`
	Error        string             `json:"error,omitempty"`
}

type TargetCapabilities struct {
	CanCreate   bool `json:"can_create"`
	CanInsert   bool `json:"can_insert"`
	CanTruncate bool `json:"can_truncate"`
}
