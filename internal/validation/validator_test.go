package validation

import (
	"errors"
	"testing"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/fields"
	"github.com/mmrzaf/rdgen/internal/registry"
)

func peopleSchema() *domain.Schema {
	return &domain.Schema{
		ID:   "people",
		Name: "people",
		Fields: []domain.FieldSpec{
			{Name: "username", Type: "lowercase", Params: map[string]interface{}{"min_length": 6, "max_length": 12}},
			{Name: "age", Type: "integer", Params: map[string]interface{}{"min": 20, "max": 31}},
			{Name: "sex", Type: "set", Params: map[string]interface{}{"values": []interface{}{"Male", "Female"}}},
		},
	}
}

func TestValidateSchema(t *testing.T) {
	v := NewValidator(registry.DefaultFieldRegistry())
	if err := v.ValidateSchema(peopleSchema()); err != nil {
		t.Fatalf("expected valid schema, got %v", err)
	}

	noName := peopleSchema()
	noName.Name = ""
	if err := v.ValidateSchema(noName); err == nil {
		t.Fatal("expected missing name error")
	}

	noFields := peopleSchema()
	noFields.Fields = nil
	if err := v.ValidateSchema(noFields); err == nil {
		t.Fatal("expected missing fields error")
	}

	short := peopleSchema()
	short.Fields[0].Name = "u"
	if err := v.ValidateSchema(short); err == nil {
		t.Fatal("expected short field name error")
	}

	dup := peopleSchema()
	dup.Fields[1].Name = "username"
	if err := v.ValidateSchema(dup); err == nil {
		t.Fatal("expected duplicate field error")
	}

	unknown := peopleSchema()
	unknown.Fields[0].Type = "nope"
	if err := v.ValidateSchema(unknown); err == nil {
		t.Fatal("expected unknown type error")
	}

	badFormat := peopleSchema()
	badFormat.Format = "csv"
	if err := v.ValidateSchema(badFormat); err == nil {
		t.Fatal("expected format error")
	}
}

func TestValidateSchema_SurfacesFieldConfigurationErrors(t *testing.T) {
	v := NewValidator(registry.DefaultFieldRegistry())
	sc := peopleSchema()
	sc.Fields[1].Params = map[string]interface{}{"min": 31, "max": 20}
	err := v.ValidateSchema(sc)
	if !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestValidateTarget(t *testing.T) {
	v := NewValidator(registry.DefaultFieldRegistry())
	sc := peopleSchema()

	ok := &domain.TargetConfig{Kind: "sqlite", DSN: "/tmp/x.db", Table: "people"}
	if err := v.ValidateTarget(ok, sc); err != nil {
		t.Fatalf("expected valid sqlite target, got %v", err)
	}
	es := &domain.TargetConfig{Kind: "elasticsearch", DSN: "http://localhost:9200", Table: "people"}
	if err := v.ValidateTarget(es, sc); err != nil {
		t.Fatalf("expected elasticsearch target valid, got %v", err)
	}

	cases := []*domain.TargetConfig{
		{Kind: "", DSN: "x", Table: "people"},
		{Kind: "sqlite", DSN: "", Table: "people"},
		{Kind: "sqlite", DSN: "x", Table: "bad-name"},
		{Kind: "sqlite", DSN: "x", Table: "select"},
		{Kind: "sqlite", DSN: "x", Table: "people", Schema: "public"},
		{Kind: "postgres", DSN: "x", Table: "people", Schema: "bad schema"},
		{Kind: "postgres", DSN: "x", Table: "people", Mode: "replace"},
		{Kind: "mysql", DSN: "x", Table: "people"},
	}
	for _, tc := range cases {
		if err := v.ValidateTarget(tc, sc); err == nil {
			t.Fatalf("expected error for %#v", tc)
		}
	}

	odd := peopleSchema()
	odd.Fields[0].Name = "user name"
	if err := v.ValidateTarget(ok, odd); err == nil {
		t.Fatal("expected unsafe column name to be rejected for sql targets")
	}
	if err := v.ValidateTarget(es, odd); err != nil {
		t.Fatalf("expected elasticsearch to accept any field name, got %v", err)
	}
}

func TestValidateGenerateRequest(t *testing.T) {
	v := NewValidator(registry.DefaultFieldRegistry())

	if err := v.ValidateGenerateRequest(&domain.GenerateRequest{}); err == nil {
		t.Fatal("expected missing schema error")
	}
	if err := v.ValidateGenerateRequest(&domain.GenerateRequest{SchemaID: "people", Schema: peopleSchema()}); err == nil {
		t.Fatal("expected exclusive schema error")
	}
	if err := v.ValidateGenerateRequest(&domain.GenerateRequest{SchemaID: "people", Format: "xml"}); err == nil {
		t.Fatal("expected format error")
	}
	if err := v.ValidateGenerateRequest(&domain.GenerateRequest{SchemaID: "people", Count: -1}); err != nil {
		t.Fatalf("negative count is clamped later, not rejected: %v", err)
	}
	req := &domain.GenerateRequest{
		Schema: peopleSchema(),
		Count:  50,
		Format: "json",
		Target: &domain.TargetConfig{Kind: "sqlite", DSN: "/tmp/x.db", Table: "people", Mode: "append"},
	}
	if err := v.ValidateGenerateRequest(req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
