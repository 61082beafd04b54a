package elasticsearch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmrzaf/rdgen/internal/domain"
)

const defaultURL = "http://localhost:9200"

// IndexSink writes generated rows as documents into one index per table.
type IndexSink struct {
	baseURL string
	client  *http.Client
}

func NewIndexSink(dsn string) *IndexSink {
	return &IndexSink{
		baseURL: baseURL(dsn),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elasticsearch %s: status=%d body=%s", e.Op, e.Status, e.Body)
}

func (s *IndexSink) do(op, method, path, contentType string, body []byte) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, s.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch %s: %w", op, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return out, &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(out))}
	}
	return out, nil
}

func (s *IndexSink) Connect() error {
	_, err := s.do("ping", http.MethodGet, "/", "", nil)
	return err
}

func (s *IndexSink) Close() error { return nil }

func (s *IndexSink) ServerVersion() (string, error) {
	body, err := s.do("info", http.MethodGet, "/", "", nil)
	if err != nil {
		return "", err
	}
	var info struct {
		Version struct {
			Number string `json:"number"`
		} `json:"version"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", err
	}
	return info.Version.Number, nil
}

// CreateTableIfNotExists creates the index with explicit mappings for the
// table's columns. An existing index is left untouched.
func (s *IndexSink) CreateTableIfNotExists(table *domain.Table) error {
	props := make(map[string]any, len(table.Columns))
	for _, col := range table.Columns {
		props[col.Name] = map[string]string{"type": fieldType(col.Type)}
	}
	payload, err := json.Marshal(map[string]any{"mappings": map[string]any{"properties": props}})
	if err != nil {
		return err
	}
	_, err = s.do("create index", http.MethodPut, "/"+indexName(table.Name), "application/json", payload)
	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusBadRequest && strings.Contains(se.Body, "resource_already_exists_exception") {
		return nil
	}
	return err
}

func fieldType(t domain.ColumnType) string {
	switch t {
	case domain.ColumnTypeBigInt:
		return "long"
	case domain.ColumnTypeDouble:
		return "double"
	case domain.ColumnTypeUUID:
		return "keyword"
	default:
		return "text"
	}
}

func (s *IndexSink) TruncateTable(tableName string) error {
	_, err := s.do("truncate", http.MethodPost, "/"+indexName(tableName)+"/_delete_by_query?refresh=true",
		"application/json", []byte(`{"query":{"match_all":{}}}`))
	return err
}

// InsertBatch sends rows through the _bulk endpoint. A 200 response with
// per-item failures is reported using the first failure's reason.
func (s *IndexSink) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	action, err := json.Marshal(map[string]any{"index": map[string]string{"_index": indexName(tableName)}})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, row := range rows {
		buf.Write(action)
		buf.WriteByte('\n')
		doc := make(map[string]any, len(columns))
		for i, col := range columns {
			doc[col] = row[i]
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	body, err := s.do("bulk insert", http.MethodPost, "/_bulk?refresh=true", "application/x-ndjson", buf.Bytes())
	if err != nil {
		return err
	}
	var res struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Error *struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("elasticsearch bulk insert: decode response: %w", err)
	}
	if !res.Errors {
		return nil
	}
	for _, item := range res.Items {
		for _, r := range item {
			if r.Error != nil {
				return fmt.Errorf("elasticsearch bulk insert: %s: %s", r.Error.Type, r.Error.Reason)
			}
		}
	}
	return fmt.Errorf("elasticsearch bulk insert returned errors")
}

func baseURL(dsn string) string {
	dsn = strings.TrimRight(strings.TrimSpace(dsn), "/")
	switch {
	case dsn == "":
		return defaultURL
	case strings.HasPrefix(dsn, "http://"), strings.HasPrefix(dsn, "https://"):
		return dsn
	default:
		return "http://" + dsn
	}
}

func indexName(table string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(table)))
}
