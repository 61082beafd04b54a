package registry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/fields"
)

func TestDefaultFieldRegistry_Types(t *testing.T) {
	r := DefaultFieldRegistry()
	want := []string{
		"alphabet", "alphanumeric", "captcha", "double", "empty", "faker", "hex", "integer",
		"lowercase", "normal", "punctuation", "ranged", "set", "space", "timestamp", "uppercase", "uuid",
	}
	got := r.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d types, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted %v, got %v", want, got)
		}
	}
}

func TestBuild_UnknownType(t *testing.T) {
	r := DefaultFieldRegistry()
	if _, err := r.Build(domain.FieldSpec{Name: "x1", Type: "nope"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestBuild_IntegerDefaultsAndParams(t *testing.T) {
	r := DefaultFieldRegistry()
	f, err := r.Build(domain.FieldSpec{Name: "age", Type: "integer"})
	if err != nil {
		t.Fatal(err)
	}
	min, max := f.(*fields.IntegerField).Bounds()
	if min != fields.DefaultIntegerMin || max != fields.DefaultIntegerMax {
		t.Fatalf("unexpected defaults %d..%d", min, max)
	}

	f, err = r.Build(domain.FieldSpec{Name: "age", Type: "integer", Params: map[string]interface{}{"min": 20, "max": float64(31)}})
	if err != nil {
		t.Fatal(err)
	}
	min, max = f.(*fields.IntegerField).Bounds()
	if min != 20 || max != 31 {
		t.Fatalf("unexpected bounds %d..%d", min, max)
	}
}

func TestBuild_RejectsNonIntegralBounds(t *testing.T) {
	r := DefaultFieldRegistry()
	specs := []domain.FieldSpec{
		{Name: "n1", Type: "integer", Params: map[string]interface{}{"min": 1.5, "max": 10}},
		{Name: "n2", Type: "integer", Params: map[string]interface{}{"min": "1", "max": 10}},
		{Name: "n3", Type: "double", Params: map[string]interface{}{"precision": 2.5}},
		{Name: "n4", Type: "double", Params: map[string]interface{}{"precision": 0}},
		{Name: "n5", Type: "double", Params: map[string]interface{}{"precision": 10}},
	}
	for _, s := range specs {
		if _, err := r.Build(s); !errors.Is(err, fields.ErrInvalidConfiguration) {
			t.Fatalf("%s: expected ErrInvalidConfiguration, got %v", s.Name, err)
		}
	}
}

func TestBuild_Charsets(t *testing.T) {
	r := DefaultFieldRegistry()
	rng := rand.New(rand.NewSource(1))
	for _, c := range fields.Charsets() {
		f, err := r.Build(domain.FieldSpec{Name: "s1", Type: c.String(), Params: map[string]interface{}{"min_length": 6, "max_length": 12}})
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		v, err := f.Generate(rng)
		if err != nil {
			t.Fatal(err)
		}
		if n := len([]rune(v.(string))); n < 6 || n > 12 {
			t.Fatalf("%s: length %d out of range", c, n)
		}
	}
	if _, err := r.Build(domain.FieldSpec{Name: "s1", Type: "hex", Params: map[string]interface{}{"min_length": 6}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected missing max_length error, got %v", err)
	}
}

func TestBuild_Ranged(t *testing.T) {
	r := DefaultFieldRegistry()
	f, err := r.Build(domain.FieldSpec{Name: "code", Type: "ranged", Params: map[string]interface{}{"chars": "ACGT!", "min_length": 5, "max_length": 10}})
	if err != nil {
		t.Fatal(err)
	}
	if f.(*fields.RangedField).Chars() != "ACGT!" {
		t.Fatal("unexpected chars")
	}
	if _, err := r.Build(domain.FieldSpec{Name: "code", Type: "ranged", Params: map[string]interface{}{"chars": "AC", "min_length": 5, "max_length": 10}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestBuild_Set(t *testing.T) {
	r := DefaultFieldRegistry()
	if _, err := r.Build(domain.FieldSpec{Name: "sex", Type: "set", Params: map[string]interface{}{"values": []interface{}{"Male", "Male"}}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected unique-values error, got %v", err)
	}
	if _, err := r.Build(domain.FieldSpec{Name: "sex", Type: "set", Params: map[string]interface{}{"values": []interface{}{[]interface{}{1}, "x"}}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected scalar error, got %v", err)
	}
	f, err := r.Build(domain.FieldSpec{Name: "sex", Type: "set", Params: map[string]interface{}{"values": []interface{}{"Male", "Female", 3}}})
	if err != nil {
		t.Fatal(err)
	}
	v, err := f.Generate(rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	switch v {
	case "Male", "Female", 3:
	default:
		t.Fatalf("unexpected set value %#v", v)
	}
}

func TestRegister_CustomFactory(t *testing.T) {
	r := NewFieldRegistry()
	r.Register("const_one", func(map[string]interface{}) (fields.Field, error) {
		return fields.NewUserCallbackField(func() (interface{}, error) { return 1, nil })
	})
	f, err := r.Build(domain.FieldSpec{Name: "one", Type: "const_one"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := f.Generate(nil); v != 1 {
		t.Fatalf("unexpected value %#v", v)
	}
}

func TestBuild_NormalAndTimestamp(t *testing.T) {
	r := DefaultFieldRegistry()
	rng := rand.New(rand.NewSource(1))

	f, err := r.Build(domain.FieldSpec{Name: "height", Type: "normal", Params: map[string]interface{}{"mean": 170, "std": 7.5, "precision": 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := must(f.Generate(rng)).(float64); !ok {
		t.Fatal("expected float64 from normal field")
	}
	if _, err := r.Build(domain.FieldSpec{Name: "height", Type: "normal", Params: map[string]interface{}{"std": "wide"}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}

	f, err = r.Build(domain.FieldSpec{Name: "created", Type: "timestamp", Params: map[string]interface{}{
		"start": "2024-01-01", "end": "2024-01-31", "layout": "2006-01-02",
	}})
	if err != nil {
		t.Fatal(err)
	}
	if s := must(f.Generate(rng)).(string); len(s) != 10 || s[:8] != "2024-01-" {
		t.Fatalf("unexpected date %q", s)
	}
	if _, err := r.Build(domain.FieldSpec{Name: "created", Type: "timestamp"}); err != nil {
		t.Fatalf("expected defaults to build, got %v", err)
	}
	if _, err := r.Build(domain.FieldSpec{Name: "created", Type: "timestamp", Params: map[string]interface{}{"start": "now", "end": "-1d"}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected reversed window rejected, got %v", err)
	}
	if _, err := r.Build(domain.FieldSpec{Name: "created", Type: "timestamp", Params: map[string]interface{}{"start": "whenever"}}); !errors.Is(err, fields.ErrInvalidConfiguration) {
		t.Fatalf("expected bad instant rejected, got %v", err)
	}
}

func must(v interface{}, err error) interface{} {
	if err != nil {
		panic(err)
	}
	return v
}
