package validation

import (
	"testing"

	"github.com/mmrzaf/rdgen/internal/infra/repos/schemas"
	"github.com/mmrzaf/rdgen/internal/registry"
)

func TestRepositorySchemasValidate(t *testing.T) {
	repo := schemas.NewFileRepository("../../schemas")
	list, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) == 0 {
		t.Fatal("expected schema files")
	}

	v := NewValidator(registry.DefaultFieldRegistry())
	for _, sc := range list {
		if err := v.ValidateSchema(sc); err != nil {
			t.Fatalf("schema %q failed validation: %v", sc.ID, err)
		}
	}
}
