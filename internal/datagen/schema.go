package datagen

import (
	"errors"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/fields"
	"github.com/mmrzaf/rdgen/internal/registry"
)

// FromSchema builds a generator with the schema's fields registered in file
// order. The schema seed applies unless opts override it.
func FromSchema(schema *domain.Schema, reg *registry.FieldRegistry, opts ...Option) (*DataGenerator, error) {
	if schema == nil {
		return nil, errors.New("schema is nil")
	}
	if schema.Seed != nil {
		opts = append([]Option{WithSeed(*schema.Seed)}, opts...)
	}
	g := New(opts...)
	for _, spec := range schema.Fields {
		f, err := reg.Build(spec)
		if err != nil {
			return nil, err
		}
		if err := g.AddField(spec.Name, f); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Table describes the sink table for g's current fields.
func (g *DataGenerator) Table(name string) *domain.Table {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := &domain.Table{Name: name, Columns: make([]domain.Column, 0, len(g.order))}
	for _, n := range g.order {
		t.Columns = append(t.Columns, domain.Column{Name: n, Type: fields.ColumnTypeOf(g.fields[n])})
	}
	return t
}
