package datagen

import (
	"testing"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/registry"
)

func TestFromSchema(t *testing.T) {
	seed := int64(12)
	sc := &domain.Schema{
		Name: "people",
		Seed: &seed,
		Fields: []domain.FieldSpec{
			{Name: "id", Type: "uuid"},
			{Name: "username", Type: "lowercase", Params: map[string]interface{}{"min_length": 6, "max_length": 12}},
			{Name: "age", Type: "integer", Params: map[string]interface{}{"min": 20, "max": 31}},
			{Name: "weight", Type: "double", Params: map[string]interface{}{"min": 50, "max": 80, "precision": 1}},
		},
	}
	g, err := FromSchema(sc, registry.DefaultFieldRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if g.Seed() != 12 {
		t.Fatalf("expected schema seed, got %d", g.Seed())
	}

	override, err := FromSchema(sc, registry.DefaultFieldRegistry(), WithSeed(13))
	if err != nil {
		t.Fatal(err)
	}
	if override.Seed() != 13 {
		t.Fatalf("expected option seed to win, got %d", override.Seed())
	}

	tbl := g.Table("people")
	want := []domain.Column{
		{Name: "id", Type: domain.ColumnTypeUUID},
		{Name: "username", Type: domain.ColumnTypeText},
		{Name: "age", Type: domain.ColumnTypeBigInt},
		{Name: "weight", Type: domain.ColumnTypeDouble},
	}
	if len(tbl.Columns) != len(want) {
		t.Fatalf("unexpected columns %#v", tbl.Columns)
	}
	for i := range want {
		if tbl.Columns[i] != want[i] {
			t.Fatalf("column %d: expected %#v, got %#v", i, want[i], tbl.Columns[i])
		}
	}
}

func TestFromSchema_BadField(t *testing.T) {
	sc := &domain.Schema{
		Name:   "bad",
		Fields: []domain.FieldSpec{{Name: "age", Type: "integer", Params: map[string]interface{}{"min": 5, "max": 5}}},
	}
	if _, err := FromSchema(sc, registry.DefaultFieldRegistry()); err == nil {
		t.Fatal("expected build error")
	}
	if _, err := FromSchema(nil, registry.DefaultFieldRegistry()); err == nil {
		t.Fatal("expected nil schema error")
	}
}
