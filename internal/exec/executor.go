package exec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/logging"
)

const DefaultBatchSize = 500

type Target interface {
	Connect() error
	Close() error
	CreateTableIfNotExists(table *domain.Table) error
	TruncateTable(tableName string) error
	InsertBatch(tableName string, columns []string, rows [][]interface{}) error
}

// ServerVersioner is implemented by targets that can report the version of
// the server they are connected to.
type ServerVersioner interface {
	ServerVersion() (string, error)
}

type WriteStats struct {
	RowsWritten     int     `json:"rows_written"`
	Batches         int     `json:"batches"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type Executor struct {
	logger *logging.Logger
}

func NewExecutor(logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Executor{logger: logger.WithComponent("exec")}
}

// Write connects to target, prepares the table according to mode and inserts
// rows in column order, batchSize rows per InsertBatch call.
func (e *Executor) Write(rows []domain.Row, table *domain.Table, target Target, mode string, batchSize int) (*WriteStats, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if mode == "" {
		mode = domain.TableModeCreate
	}

	if err := target.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to target: %w", err)
	}
	defer target.Close()

	start := time.Now()

	switch mode {
	case domain.TableModeCreate:
		if err := target.CreateTableIfNotExists(table); err != nil {
			return nil, fmt.Errorf("failed to create table '%s': %w", table.Name, err)
		}
	case domain.TableModeTruncate:
		if err := target.CreateTableIfNotExists(table); err != nil {
			return nil, fmt.Errorf("failed to create table '%s': %w", table.Name, err)
		}
		if err := target.TruncateTable(table.Name); err != nil {
			return nil, fmt.Errorf("failed to truncate table '%s': %w", table.Name, err)
		}
	case domain.TableModeAppend:
	default:
		return nil, fmt.Errorf("unknown table mode: %s", mode)
	}

	columnNames := table.ColumnNames()
	stats := &WriteStats{}
	batch := make([][]interface{}, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := target.InsertBatch(table.Name, columnNames, batch); err != nil {
			return fmt.Errorf("failed to insert batch %d into '%s': %w", stats.Batches+1, table.Name, err)
		}
		stats.Batches++
		stats.RowsWritten += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, row := range rows {
		values := make([]interface{}, len(columnNames))
		for i, col := range columnNames {
			values[i] = sinkValue(row[col])
		}
		batch = append(batch, values)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	stats.DurationSeconds = time.Since(start).Seconds()
	e.logger.Infow("write.done", map[string]interface{}{
		"table":   table.Name,
		"mode":    mode,
		"rows":    stats.RowsWritten,
		"batches": stats.Batches,
	})
	return stats, nil
}

// sinkValue narrows a generated value to something every driver accepts.
// Callback fields may return arbitrary types.
func sinkValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, string, bool, int64, float64, []byte, time.Time:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	case fmt.Stringer:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
