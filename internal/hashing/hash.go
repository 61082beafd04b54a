package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/mmrzaf/rdgen/internal/domain"
)

// HashSchema fingerprints the parts of a schema that shape generated data.
// Field order is significant; param key order is not.
func HashSchema(schema *domain.Schema) (string, error) {
	canonical := canonicalizeSchema(schema)
	data, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func canonicalizeSchema(schema *domain.Schema) map[string]interface{} {
	fields := make([]map[string]interface{}, len(schema.Fields))
	for i, f := range schema.Fields {
		fieldMap := map[string]interface{}{
			"name": f.Name,
			"type": f.Type,
		}
		if len(f.Params) > 0 {
			fieldMap["params"] = canonicalizeParams(f.Params)
		}
		fields[i] = fieldMap
	}

	result := map[string]interface{}{
		"name":   schema.Name,
		"fields": fields,
	}
	if schema.ID != "" {
		result["id"] = schema.ID
	}
	return result
}

func canonicalizeParams(params map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := params[k]
		switch val := v.(type) {
		case map[string]interface{}:
			result[k] = canonicalizeParams(val)
		case int:
			result[k] = float64(val)
		default:
			result[k] = val
		}
	}
	return result
}
