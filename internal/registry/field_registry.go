package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/fields"
)

// Factory builds a field from the params of a schema entry.
type Factory func(params map[string]interface{}) (fields.Field, error)

type FieldRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{
		factories: make(map[string]Factory),
	}
}

func (r *FieldRegistry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

func (r *FieldRegistry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("field type not found: %s", name)
	}
	return factory, nil
}

func (r *FieldRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instantiates the field described by spec.
func (r *FieldRegistry) Build(spec domain.FieldSpec) (fields.Field, error) {
	factory, err := r.Get(spec.Type)
	if err != nil {
		return nil, err
	}
	f, err := factory(spec.Params)
	if err != nil {
		return nil, fmt.Errorf("field '%s' (%s): %w", spec.Name, spec.Type, err)
	}
	return f, nil
}

func DefaultFieldRegistry() *FieldRegistry {
	r := NewFieldRegistry()
	for _, c := range fields.Charsets() {
		r.Register(c.String(), charsetFactory(c))
	}
	r.Register("ranged", rangedFactory)
	r.Register("integer", integerFactory)
	r.Register("double", doubleFactory)
	r.Register("normal", normalFactory)
	r.Register("timestamp", timestampFactory)
	r.Register("set", setFactory)
	r.Register("empty", func(map[string]interface{}) (fields.Field, error) { return fields.EmptyField{}, nil })
	r.Register("uuid", func(map[string]interface{}) (fields.Field, error) { return fields.UUIDField{}, nil })
	r.Register("faker", fakerFactory)
	return r
}
