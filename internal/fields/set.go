package fields

import (
	"fmt"
	"math/rand"
	"reflect"
)

// SetField picks one of its values uniformly on every call.
type SetField[T comparable] struct {
	values []T
}

// NewSetField requires at least two distinct values. Duplicates are kept and
// weight the draw accordingly. With T = any the values may be slices or maps;
// those are compared with reflect.DeepEqual.
func NewSetField[T comparable](values ...T) (*SetField[T], error) {
	if n := countDistinct(values, 2); n < 2 {
		return nil, fmt.Errorf("%w: set needs at least 2 unique values, got %d", ErrInvalidConfiguration, n)
	}
	cp := make([]T, len(values))
	copy(cp, values)
	return &SetField[T]{values: cp}, nil
}

func (f *SetField[T]) Generate(rng *rand.Rand) (interface{}, error) {
	return f.Pick(rng), nil
}

func (f *SetField[T]) Pick(rng *rand.Rand) T {
	return f.values[rng.Intn(len(f.values))]
}

func (f *SetField[T]) Values() []T {
	cp := make([]T, len(f.values))
	copy(cp, f.values)
	return cp
}

// countDistinct counts distinct values, stopping once limit is reached.
func countDistinct[T comparable](values []T, limit int) int {
	hashable := make(map[T]struct{}, len(values))
	var others []any
	for _, v := range values {
		if rv := reflect.ValueOf(any(v)); !rv.IsValid() || rv.Comparable() {
			hashable[v] = struct{}{}
		} else if !containsDeepEqual(others, v) {
			others = append(others, v)
		}
		if len(hashable)+len(others) >= limit {
			break
		}
	}
	return len(hashable) + len(others)
}

func containsDeepEqual(list []any, v any) bool {
	for _, o := range list {
		if reflect.DeepEqual(o, v) {
			return true
		}
	}
	return false
}
