package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mmrzaf/rdgen/internal/datagen"
	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/registry"
)

type Validator struct {
	fieldRegistry *registry.FieldRegistry
}

func NewValidator(fieldRegistry *registry.FieldRegistry) *Validator {
	return &Validator{fieldRegistry: fieldRegistry}
}

// identifier validation: allow simple SQL identifiers only (prevents injection via table/column names).
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedWords = map[string]struct{}{
		"add": {}, "all": {}, "alter": {}, "and": {}, "any": {}, "as": {},
		"asc": {}, "between": {}, "by": {}, "case": {}, "check": {},
		"column": {}, "constraint": {}, "create": {}, "cross": {}, "current_date": {},
		"current_time": {}, "current_timestamp": {}, "database": {}, "default": {}, "delete": {},
		"desc": {}, "distinct": {}, "do": {}, "drop": {}, "else": {},
		"end": {}, "except": {}, "exists": {}, "false": {}, "for": {},
		"foreign": {}, "from": {}, "full": {}, "grant": {}, "group": {},
		"having": {}, "in": {}, "index": {}, "inner": {}, "insert": {},
		"intersect": {}, "into": {}, "is": {}, "join": {}, "key": {},
		"left": {}, "like": {}, "limit": {}, "natural": {}, "not": {},
		"null": {}, "offset": {}, "on": {}, "or": {}, "order": {},
		"outer": {}, "primary": {}, "references": {}, "returning": {}, "revoke": {},
		"right": {}, "schema": {}, "select": {}, "set": {}, "table": {},
		"then": {}, "to": {}, "true": {}, "truncate": {}, "union": {},
		"unique": {}, "update": {}, "user": {}, "using": {}, "values": {},
		"view": {}, "when": {}, "where": {}, "with": {},
	}
)

func IsValidIdentifier(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !identRe.MatchString(s) {
		return false
	}
	if _, ok := reservedWords[strings.ToLower(s)]; ok {
		return false
	}
	return true
}

func IsValidMode(mode string) bool {
	switch mode {
	case domain.TableModeCreate, domain.TableModeTruncate, domain.TableModeAppend:
		return true
	default:
		return false
	}
}

func (v *Validator) ValidateSchema(schema *domain.Schema) error {
	if schema.Name == "" {
		return errors.New("schema name is required")
	}
	if len(schema.Fields) == 0 {
		return errors.New("schema must have at least one field")
	}
	if schema.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", schema.Count)
	}
	if _, err := domain.ParseFormat(schema.Format); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, f := range schema.Fields {
		if utf8.RuneCountInString(f.Name) < datagen.MinFieldNameLength {
			return fmt.Errorf("field name %q must be at least %d characters", f.Name, datagen.MinFieldNameLength)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name: %s", f.Name)
		}
		seen[f.Name] = true

		if f.Type == "" {
			return fmt.Errorf("field '%s': type is required", f.Name)
		}
		if _, err := v.fieldRegistry.Build(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTarget checks a sink config. Field names of the schema become
// column names, so they must be safe identifiers too.
func (v *Validator) ValidateTarget(t *domain.TargetConfig, schema *domain.Schema) error {
	if t.Kind == "" {
		return errors.New("target kind is required")
	}
	if t.DSN == "" {
		return errors.New("target dsn is required")
	}
	if !IsValidIdentifier(t.Table) {
		return fmt.Errorf("invalid target table identifier: %q", t.Table)
	}
	if t.Mode != "" && !IsValidMode(t.Mode) {
		return fmt.Errorf("invalid mode: %s", t.Mode)
	}

	switch t.Kind {
	case domain.TargetKindPostgres:
		if t.Schema != "" && !IsValidIdentifier(t.Schema) {
			return fmt.Errorf("invalid target schema identifier: %s", t.Schema)
		}
	case domain.TargetKindSQLite, domain.TargetKindElasticsearch:
		if t.Schema != "" {
			return fmt.Errorf("%s targets must not set schema", t.Kind)
		}
	default:
		return fmt.Errorf("unsupported target kind: %s", t.Kind)
	}

	if schema != nil && t.Kind != domain.TargetKindElasticsearch {
		for _, f := range schema.Fields {
			if !IsValidIdentifier(f.Name) {
				return fmt.Errorf("field name %q is not a valid column identifier", f.Name)
			}
		}
	}
	return nil
}

func (v *Validator) ValidateGenerateRequest(req *domain.GenerateRequest) error {
	hasSchemaID := req.SchemaID != ""
	hasSchema := req.Schema != nil

	if !hasSchemaID && !hasSchema {
		return errors.New("either schema_id or schema must be provided")
	}
	if hasSchemaID && hasSchema {
		return errors.New("only one of schema_id or schema must be provided")
	}
	if _, err := domain.ParseFormat(req.Format); err != nil {
		return err
	}

	if req.Schema != nil {
		if err := v.ValidateSchema(req.Schema); err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}
	}
	if req.Target != nil {
		if err := v.ValidateTarget(req.Target, req.Schema); err != nil {
			return fmt.Errorf("target validation failed: %w", err)
		}
	}
	return nil
}
