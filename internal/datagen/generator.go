// Package datagen assembles named fields into rows.
//
// A DataGenerator keeps every row it has produced for its whole lifetime:
// each Generate call appends to the same accumulated slice and returns all of
// it. Start a new DataGenerator to get a fresh dataset.
package datagen

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/rand"
	"reflect"
	"sync"
	"time"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/fields"
	"github.com/mmrzaf/rdgen/internal/logging"
)

const (
	DefaultCount = 10
	MinCount     = 10
	MaxCount     = 200

	MinFieldNameLength = 2
)

type Option func(*DataGenerator)

// WithSeed makes generation reproducible for a given field configuration.
func WithSeed(seed int64) Option {
	return func(g *DataGenerator) {
		g.seed = seed
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand hands the generator an existing source. The generator takes
// ownership; rng must not be used elsewhere concurrently.
func WithRand(rng *rand.Rand) Option {
	return func(g *DataGenerator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(g *DataGenerator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

type DataGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	seed   int64
	logger *logging.Logger

	fields map[string]fields.Field
	order  []string
	rows   []domain.Row
}

func New(opts ...Option) *DataGenerator {
	seed := time.Now().UnixNano()
	g := &DataGenerator{
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logging.Discard(),
		fields: make(map[string]fields.Field),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddField registers f under name, replacing any field already there. The
// column keeps its original position when replaced.
func (g *DataGenerator) AddField(name string, f fields.Field) error {
	if len([]rune(name)) < MinFieldNameLength {
		return fmt.Errorf("%w: field name must be at least %d characters long, got %q",
			fields.ErrInvalidConfiguration, MinFieldNameLength, name)
	}
	if isNilField(f) {
		return fmt.Errorf("%w: field %q is not a Field", fields.ErrInvalidConfiguration, name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.fields[name]; !exists {
		g.order = append(g.order, name)
	}
	g.fields[name] = f
	g.logger.Debugw("field.added", map[string]any{"field": name, "type": fmt.Sprintf("%T", f)})
	return nil
}

// RemoveField drops name if present.
func (g *DataGenerator) RemoveField(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.fields[name]; !exists {
		return
	}
	delete(g.fields, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.logger.Debugw("field.removed", map[string]any{"field": name})
}

// FieldNames returns the registered names in registration order.
func (g *DataGenerator) FieldNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

func (g *DataGenerator) Field(name string) (fields.Field, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.fields[name]
	return f, ok
}

func (g *DataGenerator) Seed() int64 { return g.seed }

// ClampCount bounds a requested row count to [MinCount, MaxCount].
func ClampCount(count int) int {
	if count < MinCount {
		return MinCount
	}
	if count > MaxCount {
		return MaxCount
	}
	return count
}

// Generate appends ClampCount(count) rows and returns every row accumulated
// so far: []domain.Row for FormatArray, a JSON string for FormatJSON. Any
// other format behaves like FormatArray.
//
// If a field fails, no row from this call is kept and the field's error is
// returned as is.
func (g *DataGenerator) Generate(count int, format domain.Format) (interface{}, error) {
	if format == domain.FormatJSON {
		return g.GenerateJSON(count)
	}
	return g.GenerateRows(count)
}

func (g *DataGenerator) GenerateRows(count int) ([]domain.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.generateLocked(count); err != nil {
		return nil, err
	}
	return g.snapshotLocked(), nil
}

func (g *DataGenerator) GenerateJSON(count int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.generateLocked(count); err != nil {
		return "", err
	}
	return encodeRows(g.rows)
}

// Rows returns the accumulated rows without generating new ones.
func (g *DataGenerator) Rows() []domain.Row {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *DataGenerator) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rows)
}

func (g *DataGenerator) generateLocked(count int) error {
	n := ClampCount(count)
	batch := make([]domain.Row, 0, n)
	for rowIdx := 0; rowIdx < n; rowIdx++ {
		row := make(domain.Row, len(g.order))
		for _, name := range g.order {
			val, err := g.fields[name].Generate(g.rng)
			if err != nil {
				g.logger.Debugw("generate.failed", map[string]any{"field": name, "row": rowIdx, "error": err.Error()})
				return err
			}
			row[name] = val
		}
		batch = append(batch, row)
	}
	g.rows = append(g.rows, batch...)
	g.logger.Debugw("generate.batch", map[string]any{
		"requested":   count,
		"generated":   n,
		"fields":      len(g.order),
		"accumulated": len(g.rows),
	})
	return nil
}

// snapshotLocked copies every row map so callers can edit what they get back
// without touching the accumulated dataset. Values are copied shallowly.
func (g *DataGenerator) snapshotLocked() []domain.Row {
	out := make([]domain.Row, len(g.rows))
	for i, row := range g.rows {
		out[i] = maps.Clone(row)
	}
	return out
}

func encodeRows(rows []domain.Row) (string, error) {
	if rows == nil {
		rows = []domain.Row{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}
	return string(data), nil
}

func isNilField(f fields.Field) bool {
	if f == nil {
		return true
	}
	rv := reflect.ValueOf(f)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
