package registry

import (
	"fmt"
	"math"
	"time"

	"github.com/mmrzaf/rdgen/internal/fields"
	"github.com/mmrzaf/rdgen/internal/timeutil"
)

func charsetFactory(c fields.Charset) Factory {
	return func(params map[string]interface{}) (fields.Field, error) {
		minLen, maxLen, err := lengthParams(params)
		if err != nil {
			return nil, err
		}
		return fields.NewCharsetField(c, minLen, maxLen)
	}
}

func rangedFactory(params map[string]interface{}) (fields.Field, error) {
	raw, ok := params["chars"]
	if !ok {
		return nil, fmt.Errorf("%w: ranged requires 'chars' param", fields.ErrInvalidConfiguration)
	}
	chars, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: 'chars' must be a string", fields.ErrInvalidConfiguration)
	}
	minLen, maxLen, err := lengthParams(params)
	if err != nil {
		return nil, err
	}
	return fields.NewRangedField(chars, minLen, maxLen)
}

func integerFactory(params map[string]interface{}) (fields.Field, error) {
	min, err := intParam(params, "min", fields.DefaultIntegerMin)
	if err != nil {
		return nil, err
	}
	max, err := intParam(params, "max", fields.DefaultIntegerMax)
	if err != nil {
		return nil, err
	}
	return fields.NewIntegerField(min, max)
}

func doubleFactory(params map[string]interface{}) (fields.Field, error) {
	min, err := intParam(params, "min", fields.DefaultDoubleMin)
	if err != nil {
		return nil, err
	}
	max, err := intParam(params, "max", fields.DefaultDoubleMax)
	if err != nil {
		return nil, err
	}
	precision, err := intParam(params, "precision", fields.DefaultDoublePrecision)
	if err != nil {
		return nil, err
	}
	return fields.NewDoubleField(min, max, int(precision))
}

func normalFactory(params map[string]interface{}) (fields.Field, error) {
	mean, err := floatParam(params, "mean", 0)
	if err != nil {
		return nil, err
	}
	std, err := floatParam(params, "std", 1)
	if err != nil {
		return nil, err
	}
	precision, err := intParam(params, "precision", fields.DefaultDoublePrecision)
	if err != nil {
		return nil, err
	}
	return fields.NewNormalField(mean, std, int(precision))
}

// timestampFactory resolves relative bounds once, when the field is built,
// so every row of a run shares the same window.
func timestampFactory(params map[string]interface{}) (fields.Field, error) {
	now := time.Now().UTC()
	start, err := instantParam(params, "start", "-30d", now)
	if err != nil {
		return nil, err
	}
	end, err := instantParam(params, "end", "now", now)
	if err != nil {
		return nil, err
	}
	layout, _ := params["layout"].(string)
	return fields.NewTimestampField(start, end, layout)
}

func setFactory(params map[string]interface{}) (fields.Field, error) {
	raw, ok := params["values"]
	if !ok {
		return nil, fmt.Errorf("%w: set requires 'values' param", fields.ErrInvalidConfiguration)
	}
	values, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: 'values' must be a list", fields.ErrInvalidConfiguration)
	}
	for i, v := range values {
		switch v.(type) {
		case string, bool, int, int64, float64, nil:
		default:
			return nil, fmt.Errorf("%w: values[%d] must be a scalar, got %T", fields.ErrInvalidConfiguration, i, v)
		}
	}
	return fields.NewSetField(values...)
}

func fakerFactory(params map[string]interface{}) (fields.Field, error) {
	kind, ok := params["kind"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: faker requires a string 'kind' param", fields.ErrInvalidConfiguration)
	}
	return fields.NewFakerField(fields.FakerKind(kind))
}

func lengthParams(params map[string]interface{}) (int, int, error) {
	if _, ok := params["min_length"]; !ok {
		return 0, 0, fmt.Errorf("%w: 'min_length' param is required", fields.ErrInvalidConfiguration)
	}
	if _, ok := params["max_length"]; !ok {
		return 0, 0, fmt.Errorf("%w: 'max_length' param is required", fields.ErrInvalidConfiguration)
	}
	minLen, err := intParam(params, "min_length", 0)
	if err != nil {
		return 0, 0, err
	}
	maxLen, err := intParam(params, "max_length", 0)
	if err != nil {
		return 0, 0, err
	}
	return int(minLen), int(maxLen), nil
}

// intParam reads an integral number. YAML decodes integers as int and JSON
// as float64; a float with a fractional part is rejected.
func intParam(params map[string]interface{}, key string, def int64) (int64, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: '%s' must be an integer, got %v", fields.ErrInvalidConfiguration, key, v)
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: '%s' out of range: %v", fields.ErrInvalidConfiguration, key, v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: '%s' must be an integer, got %T", fields.ErrInvalidConfiguration, key, raw)
	}
}

func floatParam(params map[string]interface{}, key string, def float64) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: '%s' must be a number, got %T", fields.ErrInvalidConfiguration, key, raw)
	}
}

func instantParam(params map[string]interface{}, key, def string, now time.Time) (time.Time, error) {
	raw := def
	if v, ok := params[key]; ok {
		s, ok := v.(string)
		if !ok {
			return time.Time{}, fmt.Errorf("%w: '%s' must be a string", fields.ErrInvalidConfiguration, key)
		}
		raw = s
	}
	t, err := timeutil.ParseInstant(raw, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s': %v", fields.ErrInvalidConfiguration, key, err)
	}
	return t, nil
}
